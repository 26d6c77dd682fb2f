package availability

import "errors"

// Причины отказа. Проверки бронирования возвращают первую сработавшую
var (
	ErrMalformedInput       = errors.New("malformed date or time")
	ErrPastDate             = errors.New("date is in the past")
	ErrTooSoon              = errors.New("booking is too close to the current time")
	ErrTooFarInAdvance      = errors.New("date is too far in advance")
	ErrOutsideBusinessHours = errors.New("slot is outside business hours")
	ErrSlotConflict         = errors.New("slot overlaps an existing booking")
	ErrServiceNotFound      = errors.New("service not found")
	ErrCalendarUnavailable  = errors.New("external calendar unavailable")
	ErrInternal             = errors.New("availability: internal error")
)
