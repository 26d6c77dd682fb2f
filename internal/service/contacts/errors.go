package contacts

import "errors"

var (
	// ErrContactNotFound возвращается, когда обращение не найдено
	ErrContactNotFound = errors.New("contact not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
