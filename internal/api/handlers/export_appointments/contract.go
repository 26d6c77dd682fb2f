package export_appointments

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type ExportService interface {
	ExportICS(ctx context.Context, req *models.ListRequest) ([]byte, error)
	ExportXLSX(ctx context.Context, req *models.ListRequest) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
