package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BusinessHoursRepository интерфейс часов работы
type BusinessHoursRepository interface {
	GetByDay(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error)
}

// BusySource источник занятых интервалов на дату
type BusySource interface {
	BusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error)
}

// AppointmentLister локальное хранилище записей
type AppointmentLister interface {
	ListConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// CalendarClient внешний календарь
type CalendarClient interface {
	GetBusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
