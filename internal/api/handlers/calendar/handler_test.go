package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubClient struct {
	events []googlecalendar.Event
	err    error
}

func (s *stubClient) ListEvents(context.Context, time.Time) ([]googlecalendar.Event, error) {
	return s.events, s.err
}

func (s *stubClient) Settings() googlecalendar.Config {
	return googlecalendar.Config{
		CalendarID: "primary",
		Timezone:   "America/Sao_Paulo",
		Timeout:    5 * time.Second,
		Reminders:  []googlecalendar.Reminder{{Method: "popup", Minutes: 60}},
	}
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestEvents(t *testing.T) {
	start := time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC)
	h := NewHandler(&stubClient{events: []googlecalendar.Event{
		{ID: "e1", Summary: "Agendamento - Corte", Status: "confirmed", Start: start, End: start.Add(30 * time.Minute)},
	}}, "combined", logger.NewNop())

	w := get(h.Events, "/api/v1/calendar/events?date=2026-11-03")
	require.Equal(t, http.StatusOK, w.Code)

	var resp EventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "e1", resp.Events[0].ID)

	assert.Equal(t, http.StatusBadRequest, get(h.Events, "/api/v1/calendar/events?date=03-11-2026").Code)
}

func TestEvents_Unavailable(t *testing.T) {
	h := NewHandler(&stubClient{err: fmt.Errorf("%w: timeout", googlecalendar.ErrUnavailable)}, "calendar", logger.NewNop())
	assert.Equal(t, http.StatusServiceUnavailable, get(h.Events, "/api/v1/calendar/events?date=2026-11-03").Code)

	disabled := NewHandler(nil, "local", logger.NewNop())
	assert.Equal(t, http.StatusServiceUnavailable, get(disabled.Events, "/api/v1/calendar/events?date=2026-11-03").Code)
}

func TestConfig(t *testing.T) {
	var resp ConfigResponse

	w := get(NewHandler(nil, "local", logger.NewNop()).Config, "/api/v1/calendar/config")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Enabled)
	assert.Equal(t, "local", resp.AvailabilitySource)

	w = get(NewHandler(&stubClient{}, "combined", logger.NewNop()).Config, "/api/v1/calendar/config")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Enabled)
	assert.Equal(t, 5, resp.TimeoutSeconds)
	assert.Len(t, resp.Reminders, 1)
}
