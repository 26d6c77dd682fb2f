package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BusinessHoursRule часы работы в конкретный день недели
type BusinessHoursRule struct {
	DayOfWeek time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsActive  bool
	UpdatedAt time.Time
}

// Covers интервал [start, end) целиком внутри [open, close)
func (r *BusinessHoursRule) Covers(start, end types.TimeString) bool {
	if r == nil || !r.IsActive {
		return false
	}
	return !start.IsBefore(r.OpenTime) && !end.IsAfter(r.CloseTime) && start.IsBefore(end)
}

// IsOpenAt открыто ли в момент t. Границы включаются
func (r *BusinessHoursRule) IsOpenAt(t types.TimeString) bool {
	if r == nil || !r.IsActive {
		return false
	}
	return !t.IsBefore(r.OpenTime) && !t.IsAfter(r.CloseTime)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday разбирает имя дня недели ("monday")
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown day of week %q", s)
	}
	return day, nil
}

// WeekdayName имя дня недели в нижнем регистре
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// WeekOrder порядок дней недели от понедельника
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}
