package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) (*domain.Service, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// BusinessHoursRepository интерфейс репозитория часов работы
type BusinessHoursRepository interface {
	GetByDay(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error)
	List(ctx context.Context) ([]*domain.BusinessHoursRule, error)
	Upsert(ctx context.Context, rule *domain.BusinessHoursRule) (*domain.BusinessHoursRule, error)
	Toggle(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error)
}

// AppointmentCounter ссылки записей на услугу
type AppointmentCounter interface {
	CountByService(ctx context.Context, serviceID int64) (int, error)
}

// InputValidator проверка полей запроса
type InputValidator interface {
	Struct(s interface{}) error
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
