package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerrors"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db := dbmetrics.Wrap(sqlDB, nil, "test")
	return NewRepository(db), db, mock
}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		CustomerName:    "Joao",
		CustomerPhone:   "+5511987654321",
		ServiceID:       1,
		ServiceName:     "Corte",
		ServicePrice:    40,
		DurationMinutes: 30,
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
	}
}

func TestInsertConfirmed_Success(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs("Joao", "+5511987654321", nil, int64(1), "Corte", 40.0, 30, "2026-03-02", "10:00", domain.StatusConfirmed, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	created, err := repo.InsertConfirmed(context.Background(), sampleAppointment())
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertConfirmed_ExclusionViolationIsSlotConflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_no_overlap"})

	_, err := repo.InsertConfirmed(context.Background(), sampleAppointment())
	assert.ErrorIs(t, err, ErrSlotConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertConfirmed_ConnectionLossIsUnavailable(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").WillReturnError(driver.ErrBadConn)

	_, err := repo.InsertConfirmed(context.Background(), sampleAppointment())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, pgerrors.ErrUnavailable)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListConfirmedByDate(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), "Ana", "+5511900000000", nil, int64(1), "Corte", "40.00", 30,
			date, time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC), "confirmed", nil, "evt-1", "https://cal/evt-1", nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE appointment_date >= \\$1 AND appointment_date <= \\$2 AND status = \\$3").
		WithArgs("2026-03-02", "2026-03-02", domain.StatusConfirmed).
		WillReturnRows(rows)

	list, err := repo.ListConfirmedByDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "10:00", list[0].StartTime.String())
	assert.Equal(t, 40.0, list[0].ServicePrice)
	require.NotNil(t, list[0].ExternalEventID)
	assert.Equal(t, "evt-1", *list[0].ExternalEventID)
	assert.Equal(t, date, list[0].Date)
}

func TestSetStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("UPDATE appointments SET status = \\$1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetStatus(context.Background(), 1, domain.StatusCancelled))

	mock.ExpectExec("UPDATE appointments SET status = \\$1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetStatus(context.Background(), 2, domain.StatusCancelled), ErrAppointmentNotFound)

	assert.ErrorIs(t, repo.SetStatus(context.Background(), 3, "archived"), ErrInvalidStatus)
}

func TestLockDate(t *testing.T) {
	repo, db, mock := newRepo(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, repo.LockDate(context.Background(), date), ErrTransaction)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(DateLockKey(date)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.LockDate(dbmetrics.WithTx(context.Background(), tx), date))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateLockKey_StablePerDate(t *testing.T) {
	a := DateLockKey(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	b := DateLockKey(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))
	c := DateLockKey(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
