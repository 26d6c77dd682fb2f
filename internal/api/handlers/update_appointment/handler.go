package update_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	updateAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidCustomer      = "некорректные данные клиента"
	msgNotFound             = "запись не найдена"
	msgCancelled            = "отмененную запись нельзя перенести"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		if p, ok := handlers.ClassifyAvailability(err); ok {
			h.logger.Warn("PUT /appointments/{id} - Rejected: appointment_id=%d, code=%s", id, p.Code)
			handlers.RespondProblem(w, p)
			return
		}

		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrAppointmentCancelled):
			h.logger.Warn("PUT /appointments/{id} - Appointment cancelled: appointment_id=%d", id)
			handlers.RespondConflict(w, domain.ReasonAppointmentCancelled, msgCancelled)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid customer data: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidCustomer)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated successfully: appointment_id=%d, mirror=%s",
		id, result.Mirror.Status)
	handlers.RespondJSON(w, http.StatusOK, models.WithMirror(result.Appointment, result.Mirror))
}
