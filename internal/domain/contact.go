package domain

import "time"

// ContactPreference предпочитаемый канал связи
type ContactPreference string

const (
	PreferenceEmail    ContactPreference = "email"
	PreferencePhone    ContactPreference = "phone"
	PreferenceWhatsApp ContactPreference = "whatsapp"
)

// PreferredTime предпочитаемое время суток
type PreferredTime string

const (
	PreferredMorning   PreferredTime = "morning"
	PreferredAfternoon PreferredTime = "afternoon"
	PreferredEvening   PreferredTime = "evening"
)

// Contact обращение через форму обратной связи
type Contact struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	Preference    ContactPreference
	Message       *string
	PreferredTime *PreferredTime
	OptIn         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContactStats сводка по обращениям
type ContactStats struct {
	Total           int
	OptedIn         int
	ByPreference    map[ContactPreference]int
	ByPreferredTime map[PreferredTime]int
}
