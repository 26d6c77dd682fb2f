package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модели

// CreateContactRequest запрос на создание обращения
type CreateContactRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email,max=255"`
	Phone         string  `json:"phone" validate:"required,max=32"`
	Preference    *string `json:"contactPreference,omitempty" validate:"omitempty,oneof=email phone whatsapp"`
	Message       *string `json:"message,omitempty" validate:"omitempty,max=2000"`
	PreferredTime *string `json:"preferredTime,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	OptIn         bool    `json:"optIn"`
}

// UpdateContactRequest частичное обновление обращения
type UpdateContactRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Preference    *string `json:"contactPreference,omitempty" validate:"omitempty,oneof=email phone whatsapp"`
	Message       *string `json:"message,omitempty" validate:"omitempty,max=2000"`
	PreferredTime *string `json:"preferredTime,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	OptIn         *bool   `json:"optIn,omitempty"`
}

// ToDomain конвертирует запрос в domain модель. Телефон подставляется уже нормализованным
func (r *CreateContactRequest) ToDomain(phone string) *domain.Contact {
	c := &domain.Contact{
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:      phone,
		Preference: domain.PreferenceWhatsApp,
		Message:    r.Message,
		OptIn:      r.OptIn,
	}
	if r.Preference != nil {
		c.Preference = domain.ContactPreference(*r.Preference)
	}
	c.PreferredTime = preferredTime(r.PreferredTime)
	return c
}

// ApplyTo накладывает изменения на существующее обращение
func (r *UpdateContactRequest) ApplyTo(c *domain.Contact, phone *string) {
	if r.Name != nil {
		c.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if phone != nil {
		c.Phone = *phone
	}
	if r.Preference != nil {
		c.Preference = domain.ContactPreference(*r.Preference)
	}
	if r.Message != nil {
		c.Message = r.Message
	}
	if r.PreferredTime != nil {
		c.PreferredTime = preferredTime(r.PreferredTime)
	}
	if r.OptIn != nil {
		c.OptIn = *r.OptIn
	}
}

// пустая строка сбрасывает предпочтение
func preferredTime(s *string) *domain.PreferredTime {
	if s == nil || *s == "" {
		return nil
	}
	t := domain.PreferredTime(*s)
	return &t
}

// Response модели

// ContactResponse ответ с данными обращения
type ContactResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Preference    string    `json:"contactPreference"`
	Message       *string   `json:"message,omitempty"`
	PreferredTime *string   `json:"preferredTime,omitempty"`
	OptIn         bool      `json:"optIn"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ContactListResponse ответ со списком обращений
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

// StatsResponse сводка по обращениям
type StatsResponse struct {
	Total           int            `json:"total"`
	OptedIn         int            `json:"optedIn"`
	ByPreference    map[string]int `json:"byPreference"`
	ByPreferredTime map[string]int `json:"byPreferredTime"`
}

// Методы конвертации

// FromDomainContact конвертирует domain модель в DTO
func FromDomainContact(c *domain.Contact) *ContactResponse {
	if c == nil {
		return nil
	}
	resp := &ContactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Preference: string(c.Preference),
		Message:    c.Message,
		OptIn:      c.OptIn,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.PreferredTime != nil {
		pt := string(*c.PreferredTime)
		resp.PreferredTime = &pt
	}
	return resp
}

// FromDomainContactList конвертирует список domain моделей в DTO
func FromDomainContactList(items []*domain.Contact) *ContactListResponse {
	resp := &ContactListResponse{Contacts: make([]ContactResponse, 0, len(items))}
	for _, c := range items {
		if r := FromDomainContact(c); r != nil {
			resp.Contacts = append(resp.Contacts, *r)
		}
	}
	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(s *domain.ContactStats) *StatsResponse {
	resp := &StatsResponse{
		Total:           s.Total,
		OptedIn:         s.OptedIn,
		ByPreference:    make(map[string]int, len(s.ByPreference)),
		ByPreferredTime: make(map[string]int, len(s.ByPreferredTime)),
	}
	for k, v := range s.ByPreference {
		resp.ByPreference[string(k)] = v
	}
	for k, v := range s.ByPreferredTime {
		resp.ByPreferredTime[string(k)] = v
	}
	return resp
}
