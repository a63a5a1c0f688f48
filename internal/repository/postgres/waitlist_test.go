package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intentional-app/waitlist-service/internal/domain"
	"github.com/intentional-app/waitlist-service/internal/service/waitlist"
)

func newMockRepo(t *testing.T) (*WaitlistRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWaitlistRepo(db), mock
}

var appColumns = []string{
	"id", "first_name", "last_name", "age", "city", "province_state", "country",
	"email", "phone_number", "looking_for", "additional_information", "status",
	"created_at", "updated_at",
}

func sampleApp() *domain.Application {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Application{
		ID:            "2a9f8c1e-0000-4000-8000-000000000000",
		FirstName:     "Ana",
		LastName:      "Lee",
		Age:           25,
		City:          "Reno",
		ProvinceState: "NV",
		Country:       "USA",
		Email:         "ana@mail.com",
		LookingFor:    []string{"Marriage", "Life partner"},
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	a := sampleApp()

	mock.ExpectExec("INSERT INTO waitlist_applications").
		WithArgs(a.ID, a.FirstName, a.LastName, a.Age, a.City, a.ProvinceState,
			a.Country, a.Email, a.PhoneNumber, pq.Array(a.LookingFor),
			a.AdditionalInformation, a.Status, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO waitlist_applications").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "waitlist_applications_email_key",
		})

	err := repo.Create(context.Background(), sampleApp())
	assert.ErrorIs(t, err, waitlist.ErrDuplicateEmail)
}

func TestCreateOtherConstraintNotDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	// A unique violation on something other than email must not be reported
	// as a duplicate application.
	mock.ExpectExec("INSERT INTO waitlist_applications").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "waitlist_applications_pkey",
			Detail:     "Key (id)=(...) already exists.",
		})

	err := repo.Create(context.Background(), sampleApp())
	require.Error(t, err)
	assert.NotErrorIs(t, err, waitlist.ErrDuplicateEmail)
}

func TestGet(t *testing.T) {
	repo, mock := newMockRepo(t)
	a := sampleApp()

	rows := sqlmock.NewRows(appColumns).AddRow(
		a.ID, a.FirstName, a.LastName, a.Age, a.City, a.ProvinceState,
		a.Country, a.Email, nil, `{Marriage,"Life partner"}`, nil,
		string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM waitlist_applications\\s+WHERE id").
		WithArgs(a.ID).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, got.Email)
	assert.Equal(t, []string{"Marriage", "Life partner"}, got.LookingFor)
	assert.Nil(t, got.PhoneNumber)
	assert.Nil(t, got.AdditionalInformation)
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM waitlist_applications\\s+WHERE id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "2a9f8c1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, waitlist.ErrNotFound)
}

func TestGetOptionalFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	a := sampleApp()

	rows := sqlmock.NewRows(appColumns).AddRow(
		a.ID, a.FirstName, a.LastName, a.Age, a.City, a.ProvinceState,
		a.Country, a.Email, "555-0100", `{Marriage}`, "Found via a friend",
		string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM waitlist_applications\\s+WHERE id").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, "555-0100", *got.PhoneNumber)
	require.NotNil(t, got.AdditionalInformation)
	assert.Equal(t, "Found via a friend", *got.AdditionalInformation)
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)
	a := sampleApp()

	rows := sqlmock.NewRows(appColumns).AddRow(
		a.ID, a.FirstName, a.LastName, a.Age, a.City, a.ProvinceState,
		a.Country, a.Email, nil, `{Marriage}`, nil,
		string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM waitlist_applications\\s+ORDER BY created_at DESC").
		WillReturnRows(rows)

	apps, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, a.ID, apps[0].ID)
}

func TestListWithStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM waitlist_applications WHERE status = \\$1 ORDER BY created_at DESC").
		WithArgs(domain.StatusApproved).
		WillReturnRows(sqlmock.NewRows(appColumns))

	apps, err := repo.List(context.Background(), domain.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE waitlist_applications SET status").
		WithArgs(domain.StatusApproved, now, "2a9f8c1e-0000-4000-8000-000000000000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "2a9f8c1e-0000-4000-8000-000000000000", domain.StatusApproved, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE waitlist_applications SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "2a9f8c1e-0000-4000-8000-000000000000", domain.StatusApproved, time.Now())
	assert.ErrorIs(t, err, waitlist.ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 4).
		AddRow("approved", 2)
	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM waitlist_applications GROUP BY status").
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, counts[domain.StatusPending])
	assert.Equal(t, 2, counts[domain.StatusApproved])
	assert.Equal(t, 0, counts[domain.StatusRejected])
}

func TestCreateWrapsErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO waitlist_applications").WillReturnError(boom)

	err := repo.Create(context.Background(), sampleApp())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create application")
}
