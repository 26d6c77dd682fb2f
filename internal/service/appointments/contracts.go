package appointments

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// CalendarMirror внешний календарь. nil, если интеграция выключена
type CalendarMirror interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// OutcomeObserver учет исходов операций с записями
type OutcomeObserver interface {
	ObserveBooking(operation, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
