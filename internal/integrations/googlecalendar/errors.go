package googlecalendar

import "errors"

var (
	// ErrUnavailable календарь не ответил или ответил ошибкой
	ErrUnavailable = errors.New("googlecalendar client: calendar unavailable")

	// ErrEventNotFound событие не найдено
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrCredentials не удалось прочитать учетные данные
	ErrCredentials = errors.New("googlecalendar client: invalid credentials")

	// ErrInvalidEvent событие календаря с некорректными датами
	ErrInvalidEvent = errors.New("googlecalendar client: invalid event")
)
