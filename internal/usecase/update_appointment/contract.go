package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	LockDate(ctx context.Context, date time.Time) error
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// AvailabilityEngine проверки доступности
type AvailabilityEngine interface {
	Now() time.Time
	ValidateBookingRequest(ctx context.Context, check availability.BookingCheck, now time.Time) (*availability.Validated, error)
	IsIntervalFree(ctx context.Context, date time.Time, start, end time.Time, exclude availability.Exclude) (bool, error)
}

// CalendarMirror внешний календарь. nil, если интеграция выключена
type CalendarMirror interface {
	UpdateEvent(ctx context.Context, eventID string, appt *domain.Appointment) (*domain.ExternalEventRef, error)
}

// InputValidator проверка полей запроса
type InputValidator interface {
	Struct(s interface{}) error
}

// PhoneNormalizer приведение телефона к E.164
type PhoneNormalizer interface {
	NormalizeE164(input string) (string, error)
}

// OutcomeObserver учет исходов бронирования
type OutcomeObserver interface {
	ObserveBooking(operation, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
