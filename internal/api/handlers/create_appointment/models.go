package create_appointment

import (
	"strings"

	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"` // "2025-10-15"
	Time          string  `json:"time"` // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат даты и времени проверяет движок доступности
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	req := &createAppointment.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		Date:          strings.TrimSpace(r.Date),
		Time:          strings.TrimSpace(r.Time),
		Notes:         r.Notes,
	}
	if r.CustomerEmail != nil && strings.TrimSpace(*r.CustomerEmail) != "" {
		email := strings.TrimSpace(*r.CustomerEmail)
		req.CustomerEmail = &email
	}
	return req
}
