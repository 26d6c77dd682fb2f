package update_appointment

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request частичное обновление записи. nil - поле не меняется
type Request struct {
	ID            int64   `validate:"required,gt=0"`
	CustomerName  *string `validate:"omitempty,min=1,max=100"`
	CustomerPhone *string `validate:"omitempty,max=30"`
	CustomerEmail *string `validate:"omitempty,email"`
	ServiceID     *int64  `validate:"omitempty,gt=0"`
	Date          *string // YYYY-MM-DD
	Time          *string // HH:MM
	Notes         *string `validate:"omitempty,max=500"`
}

// reschedules меняет ли запрос интервал записи
func (r *Request) reschedules(a *domain.Appointment) bool {
	if r.ServiceID != nil && *r.ServiceID != a.ServiceID {
		return true
	}
	if r.Date != nil && *r.Date != a.Date.Format(domain.DateFormat) {
		return true
	}
	return r.Time != nil && *r.Time != a.StartTime.String()
}

// Response обновленная запись и итог синхронизации с календарем
type Response struct {
	Appointment *domain.Appointment
	Mirror      domain.MirrorResult
}
