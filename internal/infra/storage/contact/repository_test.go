package contact

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
)

func TestStats(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil, "test"))

	mock.ExpectQuery("SELECT contact_preference, (.+) FROM contacts GROUP BY").
		WillReturnRows(sqlmock.NewRows([]string{"contact_preference", "preferred_time", "opt_in", "count"}).
			AddRow("whatsapp", "morning", true, 3).
			AddRow("whatsapp", "", false, 2).
			AddRow("email", "evening", true, 1))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.OptedIn)
	assert.Equal(t, 5, stats.ByPreference[domain.PreferenceWhatsApp])
	assert.Equal(t, 1, stats.ByPreference[domain.PreferenceEmail])
	assert.Equal(t, 3, stats.ByPreferredTime[domain.PreferredMorning])
	assert.Equal(t, 1, stats.ByPreferredTime[domain.PreferredEvening])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil, "test"))

	mock.ExpectExec("DELETE FROM contacts WHERE id = \\$1").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 8), ErrContactNotFound)
}
