package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64 `json:"price" validate:"gt=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"omitempty,gt=0,lte=480"` // 0 = по умолчанию
	IsActive        *bool   `json:"isActive,omitempty"`
}

// UpdateServiceRequest запрос на обновление услуги. Обновляются только переданные поля
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,gt=0,lte=480"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// UpsertBusinessHoursRequest запрос на запись правила дня недели
type UpsertBusinessHoursRequest struct {
	OpenTime  string `json:"openTime" validate:"required,hhmm"`
	CloseTime string `json:"closeTime" validate:"required,hhmm"`
	IsActive  bool   `json:"isActive"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// DeleteServiceResponse итог удаления. Deactivated - услуга выключена вместо удаления
type DeleteServiceResponse struct {
	ID          int64 `json:"id"`
	Deleted     bool  `json:"deleted"`
	Deactivated bool  `json:"deactivated"`
}

// BusinessHoursResponse правило дня недели
type BusinessHoursResponse struct {
	DayOfWeek string           `json:"dayOfWeek"`
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
	IsActive  bool             `json:"isActive"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// BusinessHoursListResponse неделя целиком, с понедельника
type BusinessHoursListResponse struct {
	Days []BusinessHoursResponse `json:"days"`
}

// OpenStatusResponse открыт ли барбершоп в момент времени
type OpenStatusResponse struct {
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	DayOfWeek string            `json:"dayOfWeek"`
	IsOpen    bool              `json:"isOpen"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if r := FromDomainService(s); r != nil {
			resp.Services = append(resp.Services, *r)
		}
	}
	return resp
}

// ToDomainService конвертирует CreateServiceRequest в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	s := &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        true,
	}
	if s.DurationMinutes == 0 {
		s.DurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

// ApplyToService применяет обновления к существующей услуге
func (r *UpdateServiceRequest) ApplyToService(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(rule *domain.BusinessHoursRule) *BusinessHoursResponse {
	if rule == nil {
		return nil
	}
	resp := &BusinessHoursResponse{
		DayOfWeek: domain.WeekdayName(rule.DayOfWeek),
		OpenTime:  rule.OpenTime,
		CloseTime: rule.CloseTime,
		IsActive:  rule.IsActive,
	}
	if !rule.UpdatedAt.IsZero() {
		updatedAt := rule.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
