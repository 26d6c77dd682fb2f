package calendar

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/googlecalendar"
)

// EventResponse событие календаря
type EventResponse struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
	Link        string    `json:"link,omitempty"`
}

// EventsResponse события за день
type EventsResponse struct {
	Date   string          `json:"date"`
	Events []EventResponse `json:"events"`
}

// ReminderResponse напоминание
type ReminderResponse struct {
	Method  string `json:"method"`
	Minutes int64  `json:"minutes"`
}

// ConfigResponse настройки интеграции без секретов
type ConfigResponse struct {
	Enabled            bool               `json:"enabled"`
	AvailabilitySource string             `json:"availabilitySource"`
	CalendarID         string             `json:"calendarId,omitempty"`
	Timezone           string             `json:"timezone,omitempty"`
	TimeoutSeconds     int                `json:"timeoutSeconds,omitempty"`
	Reminders          []ReminderResponse `json:"reminders,omitempty"`
}

// FromEvents конвертирует события клиента в HTTP response
func FromEvents(date string, events []googlecalendar.Event) *EventsResponse {
	resp := &EventsResponse{Date: date, Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			ID:          e.ID,
			Summary:     e.Summary,
			Description: e.Description,
			Status:      e.Status,
			Start:       e.Start,
			End:         e.End,
			AllDay:      e.AllDay,
			Link:        e.Link,
		})
	}
	return resp
}

// FromSettings конвертирует настройки клиента в HTTP response
func FromSettings(source string, cfg googlecalendar.Config) *ConfigResponse {
	resp := &ConfigResponse{
		Enabled:            true,
		AvailabilitySource: source,
		CalendarID:         cfg.CalendarID,
		Timezone:           cfg.Timezone,
		TimeoutSeconds:     int(cfg.Timeout / time.Second),
		Reminders:          make([]ReminderResponse, 0, len(cfg.Reminders)),
	}
	for _, r := range cfg.Reminders {
		resp.Reminders = append(resp.Reminders, ReminderResponse{Method: r.Method, Minutes: r.Minutes})
	}
	return resp
}
