package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/intentional-app/waitlist-service/internal/domain"
	"github.com/intentional-app/waitlist-service/internal/service/waitlist"
)

// uniqueViolation is the PostgreSQL error code raised when an insert trips a
// unique constraint (class 23: integrity constraint violation).
const uniqueViolation = "23505"

// WaitlistRepo implements waitlist.Repository against PostgreSQL.
type WaitlistRepo struct{ db *sql.DB }

// NewWaitlistRepo creates a Postgres-backed waitlist repository.
func NewWaitlistRepo(db *sql.DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

func (r *WaitlistRepo) Create(ctx context.Context, a *domain.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waitlist_applications
			(id, first_name, last_name, age, city, province_state, country,
			 email, phone_number, looking_for, additional_information, status,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, a.ID, a.FirstName, a.LastName, a.Age, a.City, a.ProvinceState, a.Country,
		a.Email, a.PhoneNumber, pq.Array(a.LookingFor), a.AdditionalInformation,
		a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && strings.Contains(pqErr.Constraint+pqErr.Detail, "email") {
			return waitlist.ErrDuplicateEmail
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *WaitlistRepo) Get(ctx context.Context, id string) (*domain.Application, error) {
	a := &domain.Application{}
	var phone, info sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, age, city, province_state, country,
		       email, phone_number, looking_for, additional_information, status,
		       created_at, updated_at
		FROM waitlist_applications
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Age, &a.City, &a.ProvinceState,
		&a.Country, &a.Email, &phone, pq.Array(&a.LookingFor), &info,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, waitlist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if phone.Valid {
		a.PhoneNumber = &phone.String
	}
	if info.Valid {
		a.AdditionalInformation = &info.String
	}
	return a, nil
}

func (r *WaitlistRepo) List(ctx context.Context, status domain.Status) ([]domain.Application, error) {
	q := `
		SELECT id, first_name, last_name, age, city, province_state, country,
		       email, phone_number, looking_for, additional_information, status,
		       created_at, updated_at
		FROM waitlist_applications`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var a domain.Application
		var phone, info sql.NullString
		if err := rows.Scan(
			&a.ID, &a.FirstName, &a.LastName, &a.Age, &a.City, &a.ProvinceState,
			&a.Country, &a.Email, &phone, pq.Array(&a.LookingFor), &info,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if phone.Valid {
			a.PhoneNumber = &phone.String
		}
		if info.Valid {
			a.AdditionalInformation = &info.String
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return out, nil
}

func (r *WaitlistRepo) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE waitlist_applications SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return waitlist.ErrNotFound
	}
	return nil
}

func (r *WaitlistRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM waitlist_applications GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var st domain.Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
