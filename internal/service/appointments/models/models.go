package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// ListRequest фильтр списка и выгрузок. Даты в формате YYYY-MM-DD
type ListRequest struct {
	From   *string `json:"from,omitempty"`
	To     *string `json:"to,omitempty"`
	Status *string `json:"status,omitempty"` // confirmed | cancelled
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListRequest) ToDomainFilter(loc *time.Location) (domain.AppointmentsFilter, error) {
	var filter domain.AppointmentsFilter

	if r.From != nil && *r.From != "" {
		from, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*r.From), loc)
		if err != nil {
			return filter, fmt.Errorf("invalid from date %q", *r.From)
		}
		filter.From = &from
	}
	if r.To != nil && *r.To != "" {
		to, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*r.To), loc)
		if err != nil {
			return filter, fmt.Errorf("invalid to date %q", *r.To)
		}
		filter.To = &to
	}
	if r.Status != nil && *r.Status != "" {
		status := domain.AppointmentStatus(strings.ToLower(*r.Status))
		if !status.IsValid() {
			return filter, fmt.Errorf("invalid status %q", *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                int64            `json:"id"`
	CustomerName      string           `json:"customerName"`
	CustomerPhone     string           `json:"customerPhone"`
	CustomerEmail     *string          `json:"customerEmail,omitempty"`
	ServiceID         int64            `json:"serviceId"`
	ServiceName       string           `json:"serviceName"`
	ServicePrice      float64          `json:"servicePrice"`
	DurationMinutes   int              `json:"durationMinutes"`
	Date              string           `json:"date"`
	StartTime         types.TimeString `json:"startTime"`
	EndTime           types.TimeString `json:"endTime"`
	Status            string           `json:"status"`
	Notes             *string          `json:"notes,omitempty"`
	ExternalEventID   *string          `json:"externalEventId,omitempty"`
	ExternalEventLink *string          `json:"externalEventLink,omitempty"`
	CancelledAt       *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// MirrorResponse итог синхронизации с внешним календарем
type MirrorResponse struct {
	Status    string  `json:"status"` // mirrored | failed | skipped
	Code      *string `json:"code,omitempty"`
	EventID   *string `json:"eventId,omitempty"`
	EventLink *string `json:"eventLink,omitempty"`
}

// AppointmentWithMirrorResponse запись вместе с итогом синхронизации
type AppointmentWithMirrorResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Mirror      MirrorResponse      `json:"mirror"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	end, err := a.StartTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		end = a.StartTime
	}

	return &AppointmentResponse{
		ID:                a.ID,
		CustomerName:      a.CustomerName,
		CustomerPhone:     a.CustomerPhone,
		CustomerEmail:     a.CustomerEmail,
		ServiceID:         a.ServiceID,
		ServiceName:       a.ServiceName,
		ServicePrice:      a.ServicePrice,
		DurationMinutes:   a.DurationMinutes,
		Date:              a.Date.Format(domain.DateFormat),
		StartTime:         a.StartTime,
		EndTime:           end,
		Status:            string(a.Status),
		Notes:             a.Notes,
		ExternalEventID:   a.ExternalEventID,
		ExternalEventLink: a.ExternalEventLink,
		CancelledAt:       a.CancelledAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(items []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(items))}
	for _, a := range items {
		if r := FromDomainAppointment(a); r != nil {
			resp.Appointments = append(resp.Appointments, *r)
		}
	}
	return resp
}

// FromDomainMirror конвертирует итог синхронизации в DTO
func FromDomainMirror(m domain.MirrorResult) MirrorResponse {
	resp := MirrorResponse{Status: string(m.Status)}
	if m.Code != "" {
		code := string(m.Code)
		resp.Code = &code
	}
	if m.EventID != "" {
		id := m.EventID
		resp.EventID = &id
	}
	if m.EventLink != "" {
		link := m.EventLink
		resp.EventLink = &link
	}
	return resp
}

// WithMirror запись и итог синхронизации одним ответом
func WithMirror(a *domain.Appointment, m domain.MirrorResult) *AppointmentWithMirrorResponse {
	return &AppointmentWithMirrorResponse{
		Appointment: *FromDomainAppointment(a),
		Mirror:      FromDomainMirror(m),
	}
}
