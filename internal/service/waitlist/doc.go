// Package waitlist implements waitlist application intake and review.
//
// The service layer contains all business logic for validating, persisting,
// listing, status-updating, and exporting applications. It depends on the
// Repository interface defined in this package and should never import from
// the api package.
//
// The repository implementation lives in repository/postgres/.
package waitlist
