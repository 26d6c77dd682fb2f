package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Appointment запись клиента на услугу
type Appointment struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	ServiceID int64
	// Данные услуги на момент записи
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	Date      time.Time // календарная дата без времени
	StartTime types.TimeString
	Status    AppointmentStatus
	Notes     *string

	ExternalEventID   *string
	ExternalEventLink *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed true для подтвержденной записи
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled true для отмененной записи
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Interval полуоткрытый интервал [start, start+duration) в зоне loc
func (a *Appointment) Interval(loc *time.Location) (BusyInterval, error) {
	start, err := a.StartTime.OnDate(a.Date, loc)
	if err != nil {
		return BusyInterval{}, err
	}
	interval := BusyInterval{
		Start:         start,
		End:           start.Add(time.Duration(a.DurationMinutes) * time.Minute),
		AppointmentID: a.ID,
	}
	if a.ExternalEventID != nil {
		interval.ExternalEventID = *a.ExternalEventID
	}
	return interval, nil
}

// ExternalEventRef ссылка на событие во внешнем календаре
type ExternalEventRef struct {
	ID   string
	Link string
}

// AppointmentsFilter фильтр списка записей
type AppointmentsFilter struct {
	From   *time.Time         // начало периода включительно
	To     *time.Time         // конец периода включительно
	Status *AppointmentStatus // nil - все статусы
}
