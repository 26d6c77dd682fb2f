package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrDuplicateName возвращается, когда услуга с таким именем уже есть
	ErrDuplicateName = errors.New("service name already exists")

	// ErrRuleNotFound возвращается, когда для дня недели нет правила
	ErrRuleNotFound = errors.New("business hours rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
