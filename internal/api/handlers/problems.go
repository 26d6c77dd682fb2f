package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

const (
	msgMalformedInput       = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgPastDate             = "дата уже прошла"
	msgTooSoon              = "слишком поздно для записи на это время"
	msgTooFarInAdvance      = "дата записи слишком далеко в будущем"
	msgOutsideBusinessHours = "время вне часов работы"
	msgSlotConflict         = "выбранное время уже занято"
	msgServiceNotFound      = "услуга не найдена"
	msgStoreUnavailable     = "хранилище временно недоступно, повторите попытку"
	msgCalendarUnavailable  = "внешний календарь временно недоступен, повторите попытку"
)

// Problem описание ошибки для клиента
type Problem struct {
	Status    int
	Code      domain.ReasonCode
	Message   string
	Retryable bool
}

var reasonProblems = map[domain.ReasonCode]Problem{
	domain.ReasonMalformedInput:       {Status: http.StatusBadRequest, Message: msgMalformedInput},
	domain.ReasonPastDate:             {Status: http.StatusUnprocessableEntity, Message: msgPastDate},
	domain.ReasonTooSoon:              {Status: http.StatusUnprocessableEntity, Message: msgTooSoon},
	domain.ReasonTooFarInAdvance:      {Status: http.StatusUnprocessableEntity, Message: msgTooFarInAdvance},
	domain.ReasonOutsideBusinessHours: {Status: http.StatusUnprocessableEntity, Message: msgOutsideBusinessHours},
	domain.ReasonSlotConflict:         {Status: http.StatusConflict, Message: msgSlotConflict},
	domain.ReasonNotFound:             {Status: http.StatusNotFound, Message: msgServiceNotFound},
}

// ReasonMessage текст для клиента по коду отказа
func ReasonMessage(code domain.ReasonCode) string {
	return reasonProblems[code].Message
}

// ClassifyAvailability переводит ошибки хранилища, календаря и проверок бронирования в ответ клиенту.
// false означает, что ошибку должен разобрать сам обработчик
func ClassifyAvailability(err error) (Problem, bool) {
	if p, ok := StoreUnavailable(err); ok {
		return p, true
	}
	if errors.Is(err, availability.ErrCalendarUnavailable) {
		return Problem{
			Status:    http.StatusServiceUnavailable,
			Code:      domain.ReasonCalendarUnavailable,
			Message:   msgCalendarUnavailable,
			Retryable: true,
		}, true
	}

	code, ok := availability.ReasonOf(err)
	if !ok {
		return Problem{}, false
	}
	p := reasonProblems[code]
	p.Code = code
	return p, true
}

// StoreUnavailable ответ 503, если ошибка вызвана недоступностью хранилища
func StoreUnavailable(err error) (Problem, bool) {
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		return Problem{}, false
	}
	return Problem{
		Status:    http.StatusServiceUnavailable,
		Code:      domain.ReasonStoreUnavailable,
		Message:   msgStoreUnavailable,
		Retryable: true,
	}, true
}
