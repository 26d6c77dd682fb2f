package calendar

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/googlecalendar"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCalendarDisabled    = "интеграция с календарем выключена"
	msgCalendarUnavailable = "внешний календарь временно недоступен, повторите попытку"
)

// Handler просмотр внешнего календаря
type Handler struct {
	client CalendarClient
	source string
	logger Logger
}

// NewHandler client может быть nil, если календарь выключен
func NewHandler(client CalendarClient, availabilitySource string, logger Logger) *Handler {
	return &Handler{
		client: client,
		source: availabilitySource,
		logger: logger,
	}
}

// Events GET /api/v1/calendar/events?date=YYYY-MM-DD
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		handlers.RespondProblem(w, handlers.Problem{
			Status:  http.StatusServiceUnavailable,
			Code:    domain.ReasonCalendarUnavailable,
			Message: msgCalendarDisabled,
		})
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /calendar/events - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	events, err := h.client.ListEvents(r.Context(), date)
	if err != nil {
		if errors.Is(err, googlecalendar.ErrUnavailable) || errors.Is(err, googlecalendar.ErrCredentials) {
			h.logger.Warn("GET /calendar/events - Calendar unavailable: %v", err)
			handlers.RespondProblem(w, handlers.Problem{
				Status:    http.StatusServiceUnavailable,
				Code:      domain.ReasonCalendarUnavailable,
				Message:   msgCalendarUnavailable,
				Retryable: true,
			})
			return
		}
		h.logger.Error("GET /calendar/events - Failed to list events: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/events - Events retrieved: date=%s, count=%d", dateStr, len(events))
	handlers.RespondJSON(w, http.StatusOK, FromEvents(dateStr, events))
}

// Config GET /api/v1/calendar/config
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		handlers.RespondJSON(w, http.StatusOK, &ConfigResponse{Enabled: false, AvailabilitySource: h.source})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromSettings(h.source, h.client.Settings()))
}
