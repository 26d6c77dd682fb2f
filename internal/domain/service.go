package domain

import "time"

// Service услуга барбершопа
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable услугу можно забронировать
func (s *Service) IsBookable() bool {
	return s.IsActive && s.DurationMinutes > 0
}
