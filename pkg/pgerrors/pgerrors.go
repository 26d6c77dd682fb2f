// Package pgerrors классификация ошибок PostgreSQL (lib/pq)
package pgerrors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
	codeSerialization       = "40001"
	classConnection         = "08"
	codeAdminShutdown       = "57P01"
	codeCrashShutdown       = "57P02"
	codeCannotConnectNow    = "57P03"
)

// ErrUnavailable хранилище недоступно, запрос можно повторить
var ErrUnavailable = errors.New("storage: unavailable")

func code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	c, ok := code(err)
	return ok && c == codeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	c, ok := code(err)
	return ok && c == codeForeignKeyViolation
}

// IsExclusionViolation нарушение EXCLUDE-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	c, ok := code(err)
	return ok && c == codeExclusionViolation
}

// IsSerializationFailure конфликт сериализуемой транзакции
func IsSerializationFailure(err error) bool {
	c, ok := code(err)
	return ok && c == codeSerialization
}

// IsUnavailable соединение с БД потеряно или сервер не принимает подключения
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if c, ok := code(err); ok {
		switch {
		case c.Class() == classConnection:
			return true
		case c == codeAdminShutdown, c == codeCrashShutdown, c == codeCannotConnectNow:
			return true
		}
	}
	return false
}

// Classify оборачивает ошибку в ErrUnavailable, если она связана с недоступностью БД
func Classify(err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
