package contacts

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ContactRepository интерфейс репозитория обращений
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.ContactStats, error)
}

// InputValidator проверка входных моделей по тегам
type InputValidator interface {
	Struct(s interface{}) error
}

// PhoneNormalizer приводит телефон к E.164
type PhoneNormalizer interface {
	NormalizeE164(input string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
