package availability

import (
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var reasons = []struct {
	err  error
	code domain.ReasonCode
}{
	{ErrMalformedInput, domain.ReasonMalformedInput},
	{ErrPastDate, domain.ReasonPastDate},
	{ErrTooSoon, domain.ReasonTooSoon},
	{ErrTooFarInAdvance, domain.ReasonTooFarInAdvance},
	{ErrOutsideBusinessHours, domain.ReasonOutsideBusinessHours},
	{ErrSlotConflict, domain.ReasonSlotConflict},
	{ErrServiceNotFound, domain.ReasonNotFound},
}

// ReasonOf код отказа для ошибки проверки. false, если ошибка не является отказом
func ReasonOf(err error) (domain.ReasonCode, bool) {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code, true
		}
	}
	return "", false
}
