package domain

// Значения по умолчанию
const (
	DefaultServiceDurationMinutes = 30
	DefaultSlotStepMinutes        = 30
	DefaultMinAdvanceMinutes      = 120
	DefaultMaxAdvanceDays         = 30
	DefaultTimezone               = "America/Sao_Paulo"
)

// Ограничения бизнес-валидации
const (
	MaxServiceDurationMinutes = 480
	MaxNameLength             = 100
	MaxNotesLength            = 500
	MaxMessageLength          = 2000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
