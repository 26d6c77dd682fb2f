package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

func TestBusyInterval_Overlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	busy := BusyInterval{Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)}

	assert.True(t, busy.Overlaps(day.Add(10*time.Hour), day.Add(10*time.Hour+30*time.Minute)))
	assert.True(t, busy.Overlaps(day.Add(9*time.Hour+45*time.Minute), day.Add(10*time.Hour+15*time.Minute)))
	assert.False(t, busy.Overlaps(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour)))
	assert.False(t, busy.Overlaps(day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour)))
}

func TestAppointment_Interval(t *testing.T) {
	appt := &Appointment{
		ID:              5,
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ExternalEventID: ptr.Ptr("evt-1"),
	}

	interval, err := appt.Interval(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), interval.Start)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), interval.End)
	assert.Equal(t, int64(5), interval.AppointmentID)
	assert.Equal(t, "evt-1", interval.ExternalEventID)
}

func TestBusinessHoursRule(t *testing.T) {
	rule := &BusinessHoursRule{DayOfWeek: time.Monday, OpenTime: "08:00", CloseTime: "18:00", IsActive: true}

	assert.True(t, rule.Covers("08:00", "08:30"))
	assert.True(t, rule.Covers("17:30", "18:00"))
	assert.False(t, rule.Covers("17:45", "18:15"))
	assert.False(t, rule.Covers("07:30", "08:00"))

	assert.True(t, rule.IsOpenAt("18:00"))
	assert.False(t, rule.IsOpenAt("18:01"))

	rule.IsActive = false
	assert.False(t, rule.Covers("09:00", "09:30"))

	var missing *BusinessHoursRule
	assert.False(t, missing.IsOpenAt("09:00"))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday(" Monday ")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
	assert.Equal(t, "sunday", WeekdayName(time.Sunday))

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
