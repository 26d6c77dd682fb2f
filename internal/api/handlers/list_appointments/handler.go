package list_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgInvalidFilter    = "некорректный фильтр, ожидается from/to в формате YYYY-MM-DD и status confirmed|cancelled"
	msgInvalidTimeRange = "начало периода позже конца"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: from, to (YYYY-MM-DD), status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ParseListRequest(r.URL.Query()))
	if err != nil {
		h.respondError(w, "GET /appointments", err)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByDate GET /api/v1/appointments/date/{date}
func (h *Handler) HandleByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.ListByDate(r.Context(), date)
	if err != nil {
		h.respondError(w, "GET /appointments/date/{date}", err)
		return
	}

	h.logger.Info("GET /appointments/date/{date} - Appointments retrieved successfully: date=%s, count=%d",
		date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if p, ok := handlers.StoreUnavailable(err); ok {
		h.logger.Warn("%s - Store unavailable", route)
		handlers.RespondProblem(w, p)
		return
	}

	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid filter: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)

	case errors.Is(err, appointments.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range", route)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	default:
		h.logger.Error("%s - Failed to list appointments: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
