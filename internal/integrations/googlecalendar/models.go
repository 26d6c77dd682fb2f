package googlecalendar

import "time"

const (
	// appointmentIDProperty приватное свойство события с ID локальной записи
	appointmentIDProperty = "appointmentId"

	summaryPrefix = "Agendamento - "
)

// Reminder напоминание события
type Reminder struct {
	Method  string // email | popup
	Minutes int64
}

// Config настройки клиента
type Config struct {
	CalendarID string
	Timezone   string // метка зоны для событий
	// Location зона, в которой заданы дата и время записей. nil - зона Timezone
	Location   *time.Location
	Timeout    time.Duration
	Reminders  []Reminder
}

// Event событие календаря в удобном для API виде
type Event struct {
	ID          string
	Summary     string
	Description string
	Status      string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Link        string
}
