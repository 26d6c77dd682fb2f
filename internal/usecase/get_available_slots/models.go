package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date      string // YYYY-MM-DD
	ServiceID int64
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
