// Package phone нормализация телефонных номеров
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion регион по умолчанию для номеров без кода страны
const DefaultRegion = "BR"

// ErrInvalidPhone номер не удалось распознать как валидный
var ErrInvalidPhone = errors.New("phone: invalid number")

// Normalizer приводит номера к E.164 с учетом региона
type Normalizer struct {
	region string
}

// NewNormalizer создает нормализатор. Пустой region означает DefaultRegion
func NewNormalizer(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// NormalizeE164 возвращает номер в формате E.164 или ErrInvalidPhone
func (n *Normalizer) NormalizeE164(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidPhone
	}

	number, err := phonenumbers.Parse(trimmed, n.region)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhone
	}

	return phonenumbers.Format(number, phonenumbers.E164), nil
}
