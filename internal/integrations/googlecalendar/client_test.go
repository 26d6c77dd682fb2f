package googlecalendar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	return newTestClientWithConfig(t, handler, Config{
		CalendarID: "primary",
		Timezone:   "America/Sao_Paulo",
		Timeout:    2 * time.Second,
		Reminders:  []Reminder{{Method: "popup", Minutes: 30}},
	})
}

func newTestClientWithConfig(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(), cfg, nil, logger.NewNop(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return client
}

func TestGetBusyIntervals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/calendars/primary/events"))
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.NotEmpty(t, r.URL.Query().Get("timeMin"))

		_, _ = io.WriteString(w, `{"items":[
			{"id":"e1","status":"confirmed","start":{"dateTime":"2025-03-10T10:00:00-03:00"},"end":{"dateTime":"2025-03-10T11:00:00-03:00"},
			 "extendedProperties":{"private":{"appointmentId":"42"}}},
			{"id":"e2","status":"cancelled","start":{"dateTime":"2025-03-10T12:00:00-03:00"},"end":{"dateTime":"2025-03-10T13:00:00-03:00"}},
			{"id":"e3","status":"confirmed","transparency":"transparent","start":{"dateTime":"2025-03-10T14:00:00-03:00"},"end":{"dateTime":"2025-03-10T15:00:00-03:00"}},
			{"id":"e4","status":"confirmed","start":{"date":"2025-03-09"},"end":{"date":"2025-03-11"}}
		]}`)
	})

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	intervals, err := client.GetBusyIntervals(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.Equal(t, "e1", intervals[0].ExternalEventID)
	assert.Equal(t, int64(42), intervals[0].AppointmentID)
	assert.True(t, intervals[0].Start.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, loc)))
	assert.True(t, intervals[0].End.Equal(time.Date(2025, 3, 10, 11, 0, 0, 0, loc)))

	// событие на несколько дней обрезается по границам запрошенного дня
	assert.Equal(t, "e4", intervals[1].ExternalEventID)
	assert.True(t, intervals[1].Start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, loc)))
	assert.True(t, intervals[1].End.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, loc)))
}

func TestGetBusyIntervals_Unavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"code":500,"message":"backend error"}}`)
	})

	_, err := client.GetBusyIntervals(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateEvent(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"id":"evt-1","htmlLink":"https://calendar.example/evt-1"}`)
	})

	appt := &domain.Appointment{
		ID:              7,
		CustomerName:    "João Silva",
		CustomerPhone:   "+5511999999999",
		CustomerEmail:   ptr.Ptr("joao@example.com"),
		ServiceName:     "Corte de Cabelo",
		DurationMinutes: 30,
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
	}

	ref, err := client.CreateEvent(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", ref.ID)
	assert.Equal(t, "https://calendar.example/evt-1", ref.Link)

	assert.Equal(t, "Agendamento - Corte de Cabelo", got["summary"])
	assert.Contains(t, got["description"], "João Silva")
	assert.Contains(t, got["description"], "joao@example.com")

	start := got["start"].(map[string]interface{})
	assert.Equal(t, "2025-03-10T10:00:00-03:00", start["dateTime"])
	end := got["end"].(map[string]interface{})
	assert.Equal(t, "2025-03-10T10:30:00-03:00", end["dateTime"])

	reminders := got["reminders"].(map[string]interface{})
	assert.Equal(t, false, reminders["useDefault"])
	assert.Len(t, reminders["overrides"], 1)

	props := got["extendedProperties"].(map[string]interface{})["private"].(map[string]interface{})
	assert.Equal(t, "7", props["appointmentId"])
}

func TestBookingZoneDiffersFromCalendarZone(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	var (
		got     map[string]interface{}
		timeMin string
	)
	client := newTestClientWithConfig(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			timeMin = r.URL.Query().Get("timeMin")
			_, _ = io.WriteString(w, `{"items":[
				{"id":"e1","status":"confirmed","start":{"dateTime":"2025-03-10T13:00:00Z"},"end":{"dateTime":"2025-03-10T13:30:00Z"}}
			]}`)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"id":"evt-1"}`)
	}, Config{
		CalendarID: "primary",
		Timezone:   "UTC",
		Location:   saoPaulo,
		Timeout:    2 * time.Second,
	})

	_, err = client.CreateEvent(context.Background(), &domain.Appointment{
		ID:              1,
		ServiceName:     "Corte",
		DurationMinutes: 30,
		Date:            time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
	})
	require.NoError(t, err)

	start := got["start"].(map[string]interface{})
	startAt, err := time.Parse(time.RFC3339, start["dateTime"].(string))
	require.NoError(t, err)
	assert.Equal(t, "10:00", startAt.In(saoPaulo).Format("15:04"))
	assert.Equal(t, "UTC", start["timeZone"])

	intervals, err := client.GetBusyIntervals(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	dayStart, err := time.Parse(time.RFC3339, timeMin)
	require.NoError(t, err)
	assert.True(t, dayStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, saoPaulo)))

	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Start.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, saoPaulo)))
}

func TestDeleteEvent_NotFoundIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusGone)
		_, _ = io.WriteString(w, `{"error":{"code":410,"message":"deleted"}}`)
	})

	assert.NoError(t, client.DeleteEvent(context.Background(), "evt-1"))
}

func TestUpdateEvent_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"not found"}}`)
	})

	_, err := client.UpdateEvent(context.Background(), "evt-1", &domain.Appointment{
		ServiceName: "Barba", DurationMinutes: 20, Date: time.Now(), StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[
			{"id":"e1","summary":"Agendamento - Barba","status":"confirmed","htmlLink":"l1",
			 "start":{"dateTime":"2025-03-10T09:00:00-03:00"},"end":{"dateTime":"2025-03-10T09:20:00-03:00"}},
			{"id":"e2","summary":"Feriado","status":"confirmed","start":{"date":"2025-03-10"},"end":{"date":"2025-03-11"}}
		]}`)
	})

	events, err := client.ListEvents(context.Background(), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Agendamento - Barba", events[0].Summary)
	assert.False(t, events[0].AllDay)
	assert.Equal(t, "l1", events[0].Link)
	assert.True(t, events[1].AllDay)
}
