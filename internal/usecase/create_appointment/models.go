package create_appointment

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request модель запроса на создание записи
type Request struct {
	CustomerName  string  `validate:"required,max=100"`
	CustomerPhone string  `validate:"required,max=30"`
	CustomerEmail *string `validate:"omitempty,email"`
	ServiceID     int64   `validate:"required,gt=0"`
	Date          string  `validate:"required"` // YYYY-MM-DD
	Time          string  `validate:"required"` // HH:MM
	Notes         *string `validate:"omitempty,max=500"`
}

// Response созданная запись и итог зеркалирования
type Response struct {
	Appointment *domain.Appointment
	Mirror      domain.MirrorResult
}
