package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Exclude интервалы, которые не считаются занятыми (сама переносимая запись)
type Exclude struct {
	AppointmentID   int64
	ExternalEventID string
}

func (e Exclude) matches(b domain.BusyInterval) bool {
	if e.AppointmentID != 0 && b.AppointmentID == e.AppointmentID {
		return true
	}
	return e.ExternalEventID != "" && b.ExternalEventID == e.ExternalEventID
}

// FreeSlots начала слотов длительностью duration с шагом step внутри [open, close).
// Слоты раньше notBefore и пересекающие busy отбрасываются
func FreeSlots(open, close time.Time, duration, step time.Duration, notBefore time.Time, busy []domain.BusyInterval) []time.Time {
	if duration <= 0 || step <= 0 {
		return []time.Time{}
	}

	slots := make([]time.Time, 0)
	// Граница закрытия включительно: слот может закончиться ровно в close
	for t := open; !t.Add(duration).After(close); t = t.Add(step) {
		if t.Before(notBefore) {
			continue
		}
		// Касание границ не конфликт: [t, t+duration) и [start, end) полуоткрытые
		if overlapsAny(t, t.Add(duration), busy, Exclude{}) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []domain.BusyInterval, exclude Exclude) bool {
	for _, b := range busy {
		if exclude.matches(b) {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func dateOnly(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
