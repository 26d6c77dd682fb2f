package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrAppointmentCancelled возвращается при попытке перенести отмененную запись
	ErrAppointmentCancelled = errors.New("update_appointment: cancelled appointment cannot be rescheduled")

	// ErrInvalidInput возвращается при некорректных полях клиента
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
