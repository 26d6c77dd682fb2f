// Package validator обёртка над go-playground/validator
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator структурная валидация по тегам
type Validator struct {
	v *validator.Validate
}

// New создает валидатор с зарегистрированными правилами сервиса
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// hhmm - время суток "HH:MM"
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 5 || s[2] != ':' {
			return false
		}
		h := int(s[0]-'0')*10 + int(s[1]-'0')
		m := int(s[3]-'0')*10 + int(s[4]-'0')
		return s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9' &&
			s[3] >= '0' && s[3] <= '9' && s[4] >= '0' && s[4] <= '9' &&
			h < 24 && m < 60
	})
	return &Validator{v: v}
}

// Struct проверяет структуру и сворачивает ошибки полей в одну строку
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s: failed '%s'", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

// Var проверяет одно значение
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}
