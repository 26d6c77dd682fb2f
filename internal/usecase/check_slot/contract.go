package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// AvailabilityEngine проверки доступности
type AvailabilityEngine interface {
	Now() time.Time
	ValidateBookingRequest(ctx context.Context, check availability.BookingCheck, now time.Time) (*availability.Validated, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
