package export_appointments

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	listAppointments "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	msgInvalidFilter = "некорректный период выгрузки"
)

type Handler struct {
	service ExportService
	logger  Logger
}

func NewHandler(service ExportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleICS GET /api/v1/appointments/export.ics
func (h *Handler) HandleICS(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "GET /appointments/export.ics", h.service.ExportICS, contentTypeICS, "agendamentos.ics")
}

// HandleXLSX GET /api/v1/appointments/export.xlsx
func (h *Handler) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "GET /appointments/export.xlsx", h.service.ExportXLSX, contentTypeXLSX, "agendamentos.xlsx")
}

func (h *Handler) export(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	fn func(ctx context.Context, req *models.ListRequest) ([]byte, error),
	contentType, filename string,
) {
	data, err := fn(r.Context(), listAppointments.ParseListRequest(r.URL.Query()))
	if err != nil {
		if p, ok := handlers.StoreUnavailable(err); ok {
			handlers.RespondProblem(w, p)
			return
		}

		switch {
		case errors.Is(err, appointments.ErrInvalidInput), errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("%s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("%s - Failed to export appointments: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Export generated: bytes=%d", route, len(data))
	handlers.RespondFile(w, contentType, filename, data)
}
