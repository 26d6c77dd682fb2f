package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/googlecalendar"
)

// CalendarClient внешний календарь. nil, если интеграция выключена
type CalendarClient interface {
	ListEvents(ctx context.Context, date time.Time) ([]googlecalendar.Event, error)
	Settings() googlecalendar.Config
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
