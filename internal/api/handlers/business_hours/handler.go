package business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректные часы работы: ожидается день недели (monday..sunday), время HH:MM, закрытие позже открытия"
	msgRuleNotFound       = "часы работы для этого дня не заданы"
)

// Handler часы работы по дням недели
type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/business-hours
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBusinessHours(r.Context())
	if err != nil {
		h.respondError(w, "GET /business-hours", "", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/business-hours/{day}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	result, err := h.service.GetBusinessHours(r.Context(), day)
	if err != nil {
		h.respondError(w, "GET /business-hours/{day}", day, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upsert PUT /api/v1/business-hours/{day}
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	var req models.UpsertBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertBusinessHours(r.Context(), day, &req)
	if err != nil {
		h.respondError(w, "PUT /business-hours/{day}", day, err)
		return
	}

	h.logger.Info("PUT /business-hours/{day} - Business hours saved: day=%s", day)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Toggle PATCH /api/v1/business-hours/{day}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	result, err := h.service.ToggleBusinessHours(r.Context(), day)
	if err != nil {
		h.respondError(w, "PATCH /business-hours/{day}/toggle", day, err)
		return
	}

	h.logger.Info("PATCH /business-hours/{day}/toggle - Day toggled: day=%s, active=%t", day, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// IsOpen GET /api/v1/business-hours/open?date=YYYY-MM-DD&time=HH:MM
func (h *Handler) IsOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.service.IsOpen(r.Context(), q.Get("date"), q.Get("time"))
	if err != nil {
		h.respondError(w, "GET /business-hours/open", "", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route, day string, err error) {
	if p, ok := handlers.StoreUnavailable(err); ok {
		handlers.RespondProblem(w, p)
		return
	}

	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: day=%s, error=%v", route, day, err)
		handlers.RespondBadRequest(w, msgInvalidHours)

	case errors.Is(err, catalog.ErrRuleNotFound):
		h.logger.Warn("%s - Rule not found: day=%s", route, day)
		handlers.RespondNotFound(w, msgRuleNotFound)

	default:
		h.logger.Error("%s - Failed: day=%s, error=%v", route, day, err)
		handlers.RespondInternalError(w)
	}
}
