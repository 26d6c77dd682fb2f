package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewRepository(dbmetrics.Wrap(sqlDB, nil, "test")), mock
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO services").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "services_name_key"})

	_, err := repo.Create(context.Background(), &domain.Service{Name: "Corte", Price: 40, DurationMinutes: 30, IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestList_ActiveOnly(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM services WHERE is_active = \\$1 ORDER BY name ASC").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Barba", nil, "40.00", 30, true, now, now).
			AddRow(int64(2), "Corte", "Classico", "40.00", 30, true, now, now))

	list, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Barba", list[0].Name)
	assert.Nil(t, list[0].Description)
	require.NotNil(t, list[1].Description)
	assert.Equal(t, "Classico", *list[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ForeignKey(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM services WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnError(&pq.Error{Code: "23503"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrServiceReferenced)
}

func TestSetActive_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE services SET is_active = \\$1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetActive(context.Background(), 42, false), ErrServiceNotFound)
}
