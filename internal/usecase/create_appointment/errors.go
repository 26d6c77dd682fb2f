package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных полях клиента
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
