package waitlist

import (
	"context"
	"time"

	"github.com/intentional-app/waitlist-service/internal/domain"
)

// Repository defines the data access contract for waitlist applications.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new application with the timestamps already set by the
	// caller. Returns ErrDuplicateEmail when the email's unique constraint is
	// violated; the constraint, not a pre-check, arbitrates concurrent
	// submissions of the same address.
	Create(ctx context.Context, a *domain.Application) error

	// Get returns a single application. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Application, error)

	// List returns applications ordered by created_at DESC. A zero-value
	// status means no filter.
	List(ctx context.Context, status domain.Status) ([]domain.Application, error)

	// UpdateStatus sets the status and updated_at of an application.
	// Returns ErrNotFound if the id doesn't exist. Setting the current status
	// again is valid and still refreshes updated_at.
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error

	// CountByStatus returns the number of applications per status.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}
