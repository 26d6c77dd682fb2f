package contacts

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/contacts/models"
)

type ContactService interface {
	Create(ctx context.Context, req *models.CreateContactRequest) (*models.ContactResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ContactResponse, error)
	List(ctx context.Context) (*models.ContactListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateContactRequest) (*models.ContactResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
