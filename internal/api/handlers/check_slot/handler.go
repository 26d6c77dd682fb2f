package check_slot

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-BarberBooking/internal/usecase/check_slot"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: date (YYYY-MM-DD), time (HH:MM), serviceId.
// Отказ по правилам записи возвращается как 200 с available=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	serviceID, err := strconv.ParseInt(q.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkSlot.Request{
		Date:      q.Get("date"),
		Time:      q.Get("time"),
		ServiceID: serviceID,
	})
	if err != nil {
		if p, ok := handlers.ClassifyAvailability(err); ok {
			handlers.RespondProblem(w, p)
			return
		}
		h.logger.Error("GET /availability/check - Failed to check slot: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
