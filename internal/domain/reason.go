package domain

import "github.com/m04kA/SMC-BarberBooking/pkg/pgerrors"

// ReasonCode стабильный код отказа, который видит клиент
type ReasonCode string

const (
	ReasonMalformedInput       ReasonCode = "MALFORMED_INPUT"
	ReasonPastDate             ReasonCode = "PAST_DATE"
	ReasonTooSoon              ReasonCode = "TOO_SOON"
	ReasonTooFarInAdvance      ReasonCode = "TOO_FAR_IN_ADVANCE"
	ReasonOutsideBusinessHours ReasonCode = "OUTSIDE_BUSINESS_HOURS"
	ReasonSlotConflict         ReasonCode = "SLOT_CONFLICT"
	ReasonMirrorFailed         ReasonCode = "MIRROR_FAILED"
	ReasonNotFound             ReasonCode = "NOT_FOUND"
	ReasonDuplicate            ReasonCode = "DUPLICATE"
	ReasonAppointmentCancelled ReasonCode = "APPOINTMENT_CANCELLED"
	ReasonStoreUnavailable     ReasonCode = "STORE_UNAVAILABLE"
	ReasonCalendarUnavailable  ReasonCode = "CALENDAR_UNAVAILABLE"
	ReasonRateLimited          ReasonCode = "RATE_LIMITED"
	ReasonInternal             ReasonCode = "INTERNAL"
)

// ErrStoreUnavailable хранилище недоступно (повторяемая ошибка)
var ErrStoreUnavailable = pgerrors.ErrUnavailable
