package waitlist

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/intentional-app/waitlist-service/internal/domain"
)

// emailPattern is deliberately loose: anything of the shape local@domain.tld.
// Real deliverability is decided when the launch invite is actually sent.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service implements waitlist application business logic. It is safe for
// concurrent use if the underlying repository is.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a waitlist service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SubmitInput holds one application draft as received from the mobile form.
// Field names follow the wire format; the handler decodes request bodies
// directly into this struct.
type SubmitInput struct {
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Age                   int      `json:"age"`
	City                  string   `json:"city"`
	ProvinceState         string   `json:"province_state"`
	Country               string   `json:"country"`
	Email                 string   `json:"email"`
	PhoneNumber           string   `json:"phone_number"`
	LookingFor            []string `json:"looking_for"`
	AdditionalInformation string   `json:"additional_information"`
}

// validate checks the draft field by field, first failure wins. The message
// order and wording are part of the API contract with the mobile client.
func validate(in SubmitInput) *ValidationError {
	if strings.TrimSpace(in.FirstName) == "" {
		return invalid("first_name", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return invalid("last_name", "Last name is required")
	}
	if in.Age < 18 {
		return invalid("age", "Age must be at least 18")
	}
	if strings.TrimSpace(in.City) == "" {
		return invalid("city", "City is required")
	}
	if strings.TrimSpace(in.ProvinceState) == "" {
		return invalid("province_state", "Province/State is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return invalid("country", "Country is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return invalid("email", "Valid email is required")
	}
	if len(in.LookingFor) == 0 || len(in.LookingFor) > 3 {
		return invalid("looking_for", "Looking for must contain 1-3 valid selections from the predefined options")
	}
	for _, label := range in.LookingFor {
		if !domain.InLookingForCatalog(label) {
			return invalid("looking_for", "Looking for must contain 1-3 valid selections from the predefined options")
		}
	}
	return nil
}

// Submit validates and persists a new application in pending status.
// All string fields are trimmed and the email is lowercased before storage.
// Returns ErrDuplicateEmail if an application with the same (case-insensitive)
// email already exists.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Application, error) {
	if verr := validate(in); verr != nil {
		return nil, verr
	}

	now := s.now().UTC()
	app := &domain.Application{
		ID:            uuid.New().String(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Age:           in.Age,
		City:          strings.TrimSpace(in.City),
		ProvinceState: strings.TrimSpace(in.ProvinceState),
		Country:       strings.TrimSpace(in.Country),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		LookingFor:    in.LookingFor,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		app.PhoneNumber = &v
	}
	if v := strings.TrimSpace(in.AdditionalInformation); v != "" {
		app.AdditionalInformation = &v
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// List returns applications ordered most recent first. An unknown filter
// value is ignored rather than rejected, so the listing endpoint stays
// forgiving for callers; writes remain strictly validated.
func (s *Service) List(ctx context.Context, statusFilter string) ([]domain.Application, error) {
	return s.repo.List(ctx, normalizeFilter(statusFilter))
}

// Get returns a single application by id. Returns ErrNotFound when absent.
// Ids that are not even UUID-shaped are not found by definition; rejecting
// them here keeps the uuid column cast from turning into a database error.
func (s *Service) Get(ctx context.Context, id string) (*domain.Application, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// UpdateStatus sets an application's status and refreshes its updated_at.
// Any status may follow any other, including a repeat of the current one.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	st := domain.Status(status)
	if !st.Valid() {
		return invalid("status", "Invalid status. Must be pending, approved, or rejected")
	}
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, id, st, s.now().UTC())
}

// Export renders applications matching the filter as a CSV document, same
// ordering and filter semantics as List.
func (s *Service) Export(ctx context.Context, statusFilter string) ([]byte, error) {
	apps, err := s.repo.List(ctx, normalizeFilter(statusFilter))
	if err != nil {
		return nil, err
	}
	return renderCSV(apps)
}

// Stats holds application counts per status for the operator dashboard.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// GetStats returns application counts grouped by status.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{
		Pending:  counts[domain.StatusPending],
		Approved: counts[domain.StatusApproved],
		Rejected: counts[domain.StatusRejected],
	}
	st.Total = st.Pending + st.Approved + st.Rejected
	return st, nil
}

func normalizeFilter(statusFilter string) domain.Status {
	st := domain.Status(statusFilter)
	if st.Valid() {
		return st
	}
	return ""
}
