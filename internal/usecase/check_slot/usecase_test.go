package check_slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeEngine struct{ err error }

func (fakeEngine) Now() time.Time { return time.Now() }

func (e fakeEngine) ValidateBookingRequest(context.Context, availability.BookingCheck, time.Time) (*availability.Validated, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &availability.Validated{}, nil
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		available bool
		reason    domain.ReasonCode
	}{
		{name: "free", available: true},
		{name: "conflict", err: availability.ErrSlotConflict, reason: domain.ReasonSlotConflict},
		{name: "too soon", err: availability.ErrTooSoon, reason: domain.ReasonTooSoon},
		{name: "wrapped malformed", err: fmt.Errorf("%w: date", availability.ErrMalformedInput), reason: domain.ReasonMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(fakeEngine{err: tt.err}, logger.NewNop())
			resp, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10", Time: "10:00", ServiceID: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestExecute_CalendarUnavailableIsError(t *testing.T) {
	uc := NewUseCase(fakeEngine{err: availability.ErrCalendarUnavailable}, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10", Time: "10:00", ServiceID: 1})
	assert.ErrorIs(t, err, availability.ErrCalendarUnavailable)
}
