package businesshours

import "errors"

var (
	// ErrRuleNotFound возвращается, когда для дня недели нет правила
	ErrRuleNotFound = errors.New("businesshours.repository: rule not found")

	// ErrInvalidRange возвращается, когда закрытие не позже открытия
	ErrInvalidRange = errors.New("businesshours.repository: close time must be after open time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("businesshours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("businesshours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("businesshours.repository: failed to scan row")
)
