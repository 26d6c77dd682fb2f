package business_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

type HoursService interface {
	ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error)
	GetBusinessHours(ctx context.Context, dayName string) (*models.BusinessHoursResponse, error)
	UpsertBusinessHours(ctx context.Context, dayName string, req *models.UpsertBusinessHoursRequest) (*models.BusinessHoursResponse, error)
	ToggleBusinessHours(ctx context.Context, dayName string) (*models.BusinessHoursResponse, error)
	IsOpen(ctx context.Context, dateStr, timeStr string) (*models.OpenStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
