package domain

import (
	"time"
)

// Status enumerates the review states of a waitlist application.
// Transitions are unconstrained: an operator may move an application between
// any two statuses, and re-applying the current status is a valid no-op that
// still refreshes UpdatedAt.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// LookingForCatalog is the fixed list of relationship-intent labels an
// applicant may select from. It is configuration, not data: the validation
// layer and any client rendering the form share this exact list.
var LookingForCatalog = []string{
	"Long-term relationship",
	"Marriage",
	"Life partner",
	"Serious dating",
	"Meaningful connection",
	"Friendship first",
	"Casual dating",
	"New experiences",
	"Travel companion",
	"Activity partner",
	"Intellectual connection",
	"Spiritual connection",
}

// InLookingForCatalog reports whether label is a permitted selection.
func InLookingForCatalog(label string) bool {
	for _, opt := range LookingForCatalog {
		if opt == label {
			return true
		}
	}
	return false
}

// Application is one waitlist submission record. Field names are Go-style;
// the API layer owns the snake_case wire representation and the repository
// owns the column mapping, so this struct carries db tags only.
type Application struct {
	ID                    string    `db:"id"`
	FirstName             string    `db:"first_name"`
	LastName              string    `db:"last_name"`
	Age                   int       `db:"age"`
	City                  string    `db:"city"`
	ProvinceState         string    `db:"province_state"`
	Country               string    `db:"country"`
	Email                 string    `db:"email"`
	PhoneNumber           *string   `db:"phone_number"`
	LookingFor            []string  `db:"looking_for"`
	AdditionalInformation *string   `db:"additional_information"`
	Status                Status    `db:"status"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}
