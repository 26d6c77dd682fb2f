package domain

import "time"

// BusyInterval занятый интервал [Start, End). Источник - локальная запись или внешний календарь
type BusyInterval struct {
	Start time.Time
	End   time.Time

	AppointmentID   int64  // 0, если интервал пришел из календаря
	ExternalEventID string // пусто, если события нет
}

// Overlaps пересечение полуоткрытых интервалов. Касание границами пересечением не считается
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}
