package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

// Client клиент Google Calendar
type Client struct {
	svc        *calendar.Service
	calendarID string
	timezone   string
	loc        *time.Location
	timeout    time.Duration
	reminders  []Reminder
	metrics    *metrics.Metrics
	log        Logger
}

// NewClient создает клиент поверх авторизованного HTTP клиента
func NewClient(ctx context.Context, httpClient *http.Client, cfg Config, m *metrics.Metrics, log Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrUnavailable, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("googlecalendar client: invalid timezone %q: %w", cfg.Timezone, err)
	}
	// Границы дня и время событий считаются в зоне записей, Timezone остается меткой события
	if cfg.Location != nil {
		loc = cfg.Location
	}

	return &Client{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
		loc:        loc,
		timeout:    cfg.Timeout,
		reminders:  cfg.Reminders,
		metrics:    m,
		log:        log,
	}, nil
}

// Settings текущие настройки клиента (для отображения)
func (c *Client) Settings() Config {
	return Config{
		CalendarID: c.calendarID,
		Timezone:   c.timezone,
		Location:   c.loc,
		Timeout:    c.timeout,
		Reminders:  c.reminders,
	}
}

// GetBusyIntervals занятые интервалы за календарный день date.
// Отмененные и "свободные" (transparent) события игнорируются, события на весь день обрезаются по границам дня
func (c *Client) GetBusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error) {
	items, err := c.listDay(ctx, "GetBusyIntervals", date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := c.dayBounds(date)
	intervals := make([]domain.BusyInterval, 0, len(items))

	for _, item := range items {
		if item.Status == "cancelled" || item.Transparency == "transparent" {
			continue
		}

		start, end, _, err := c.eventBounds(item)
		if err != nil {
			c.log.Warn("GetBusyIntervals: skip event id=%s: %v", item.Id, err)
			continue
		}
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) {
			continue
		}

		interval := domain.BusyInterval{Start: start, End: end, ExternalEventID: item.Id}
		if item.ExtendedProperties != nil {
			if raw, ok := item.ExtendedProperties.Private[appointmentIDProperty]; ok {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
					interval.AppointmentID = id
				}
			}
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// ListEvents события календаря за день
func (c *Client) ListEvents(ctx context.Context, date time.Time) ([]Event, error) {
	items, err := c.listDay(ctx, "ListEvents", date)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		start, end, allDay, err := c.eventBounds(item)
		if err != nil {
			c.log.Warn("ListEvents: skip event id=%s: %v", item.Id, err)
			continue
		}
		events = append(events, Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Status:      item.Status,
			Start:       start,
			End:         end,
			AllDay:      allDay,
			Link:        item.HtmlLink,
		})
	}
	return events, nil
}

// CreateEvent зеркалирует запись в календарь
func (c *Client) CreateEvent(ctx context.Context, appt *domain.Appointment) (*domain.ExternalEventRef, error) {
	event, err := c.buildEvent(appt)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	c.observe("insert", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateEvent - insert: %v", ErrUnavailable, err)
	}

	c.log.Info("CreateEvent: appointment id=%d mirrored as event id=%s", appt.ID, created.Id)
	return &domain.ExternalEventRef{ID: created.Id, Link: created.HtmlLink}, nil
}

// UpdateEvent переносит изменения записи в существующее событие
func (c *Client) UpdateEvent(ctx context.Context, eventID string, appt *domain.Appointment) (*domain.ExternalEventRef, error) {
	event, err := c.buildEvent(appt)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	updated, err := c.svc.Events.Patch(c.calendarID, eventID, event).Context(ctx).Do()
	c.observe("patch", start, err)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: UpdateEvent - patch: %v", ErrUnavailable, err)
	}

	return &domain.ExternalEventRef{ID: updated.Id, Link: updated.HtmlLink}, nil
}

// DeleteEvent удаляет событие. Уже удаленное событие не считается ошибкой
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	c.observe("delete", start, err)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("%w: DeleteEvent - delete: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) listDay(ctx context.Context, op string, date time.Time) ([]*calendar.Event, error) {
	dayStart, dayEnd := c.dayBounds(date)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	call := c.svc.Events.List(c.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		TimeZone(c.timezone).
		SingleEvents(true).
		OrderBy("startTime")

	items := make([]*calendar.Event, 0)
	start := time.Now()
	err := call.Pages(ctx, func(page *calendar.Events) error {
		items = append(items, page.Items...)
		return nil
	})
	c.observe("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - list events: %v", ErrUnavailable, op, err)
	}
	return items, nil
}

func (c *Client) buildEvent(appt *domain.Appointment) (*calendar.Event, error) {
	start, err := appt.StartTime.OnDate(appt.Date, c.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	end := start.Add(time.Duration(appt.DurationMinutes) * time.Minute)

	var description strings.Builder
	fmt.Fprintf(&description, "Cliente: %s\nTelefone: %s\nServiço: %s", appt.CustomerName, appt.CustomerPhone, appt.ServiceName)
	if appt.CustomerEmail != nil && *appt.CustomerEmail != "" {
		fmt.Fprintf(&description, "\nEmail: %s", *appt.CustomerEmail)
	}
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&description, "\nObservações: %s", *appt.Notes)
	}

	overrides := make([]*calendar.EventReminder, 0, len(c.reminders))
	for _, r := range c.reminders {
		overrides = append(overrides, &calendar.EventReminder{Method: r.Method, Minutes: r.Minutes})
	}

	return &calendar.Event{
		Summary:     summaryPrefix + appt.ServiceName,
		Description: description.String(),
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.timezone},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.timezone},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{appointmentIDProperty: strconv.FormatInt(appt.ID, 10)},
		},
	}, nil
}

func (c *Client) eventBounds(item *calendar.Event) (time.Time, time.Time, bool, error) {
	if item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, ErrInvalidEvent
	}

	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("%w: start: %v", ErrInvalidEvent, err)
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("%w: end: %v", ErrInvalidEvent, err)
		}
		return start.In(c.loc), end.In(c.loc), false, nil
	}

	start, err := time.ParseInLocation(domain.DateFormat, item.Start.Date, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: all-day start: %v", ErrInvalidEvent, err)
	}
	end, err := time.ParseInLocation(domain.DateFormat, item.End.Date, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: all-day end: %v", ErrInvalidEvent, err)
	}
	return start, end, true, nil
}

func (c *Client) dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) observe(method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.CalendarCallsTotal.WithLabelValues(method, status).Inc()
	c.metrics.CalendarCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
