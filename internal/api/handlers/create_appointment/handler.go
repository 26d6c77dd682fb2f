package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCustomer    = "некорректные данные клиента"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if p, ok := handlers.ClassifyAvailability(err); ok {
			h.logger.Warn("POST /appointments - Rejected: service_id=%d, date=%s, time=%s, code=%s",
				req.ServiceID, req.Date, req.Time, p.Code)
			handlers.RespondProblem(w, p)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid customer data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomer)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, date=%s, time=%s, error=%v",
				req.ServiceID, req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, mirror=%s",
		result.Appointment.ID, result.Mirror.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.WithMirror(result.Appointment, result.Mirror))
}
