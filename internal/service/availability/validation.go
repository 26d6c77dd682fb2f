package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BookingCheck данные запроса, которые проверяются перед записью
type BookingCheck struct {
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	ServiceID int64
	Exclude   Exclude // при переносе существующей записи
}

// Validated результат успешной проверки
type Validated struct {
	Date     time.Time
	Start    types.TimeString
	Service  *domain.Service
	Interval domain.BusyInterval
}

// ValidateBookingRequest проверки перед записью в фиксированном порядке.
// Возвращается первая сработавшая причина отказа
func (e *Engine) ValidateBookingRequest(ctx context.Context, check BookingCheck, now time.Time) (*Validated, error) {
	loc := e.policy.Location
	now = now.In(loc)

	// Шаг 1: Формат даты и времени
	parsed, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(check.Date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrMalformedInput, check.Date)
	}
	day := dateOnly(parsed, loc)

	start, err := types.NewTimeStringFromString(check.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: time %q", ErrMalformedInput, check.Time)
	}

	// Шаг 2: Дата не в прошлом и не дальше maxAdvance
	if err := e.checkDateRange(day, now); err != nil {
		return nil, err
	}

	// Шаг 3: Минимальный запас по времени, только для записи на сегодня
	startAt, err := start.OnDate(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if isSameDay(day, now) && startAt.Before(now.Add(e.policy.MinAdvance)) {
		return nil, ErrTooSoon
	}

	// Шаг 4: Услуга активна, а интервал целиком внутри часов работы
	service, err := e.resolveService(ctx, check.ServiceID)
	if err != nil {
		return nil, err
	}

	rule, err := e.resolveRule(ctx, day.Weekday())
	if err != nil {
		return nil, err
	}
	end, err := start.AddMinutes(service.DurationMinutes)
	if err != nil || !rule.Covers(start, end) {
		return nil, ErrOutsideBusinessHours
	}

	// Шаг 5: Нет пересечений с занятыми интервалами (кроме самой переносимой записи)
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
	free, err := e.IsIntervalFree(ctx, day, startAt, endAt, check.Exclude)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotConflict
	}

	return &Validated{
		Date:    day,
		Start:   start,
		Service: service,
		Interval: domain.BusyInterval{
			Start:         startAt,
			End:           endAt,
			AppointmentID: check.Exclude.AppointmentID,
		},
	}, nil
}
