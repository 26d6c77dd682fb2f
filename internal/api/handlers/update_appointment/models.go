package update_appointment

import (
	updateAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model. Отсутствующее поле не меняется
type UpdateAppointmentRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	Date          *string `json:"date,omitempty"`
	Time          *string `json:"time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) *updateAppointment.Request {
	return &updateAppointment.Request{
		ID:            id,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		Time:          r.Time,
		Notes:         r.Notes,
	}
}
