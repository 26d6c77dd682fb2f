package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndEnvExpansion(t *testing.T) {
	t.Setenv("BARBER_DB_PASSWORD", "s3cret")

	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "barber"
password = "${BARBER_DB_PASSWORD}"
dbname = "barber"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
	assert.Equal(t, 30, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 120, cfg.Booking.MinAdvanceMinutes)
	assert.Equal(t, 30, cfg.Booking.MaxAdvanceDays)
	assert.Equal(t, "America/Sao_Paulo", cfg.Booking.Timezone)
	assert.Equal(t, AvailabilitySourceLocal, cfg.Booking.AvailabilitySource)
	assert.Equal(t, "America/Sao_Paulo", cfg.Calendar.Timezone)
	assert.Len(t, cfg.Calendar.Reminders, 2)
}

func TestLoad_Reminders(t *testing.T) {
	path := writeConfig(t, `
[calendar]
enabled = true
credentials_file = "credentials.json"

[[calendar.reminders]]
method = "popup"
minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Calendar.Reminders, 1)
	assert.Equal(t, int64(15), cfg.Calendar.Reminders[0].Minutes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "bad step", mutate: func(c *Config) { c.Booking.SlotStepMinutes = 20 }},
		{name: "bad timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "unknown source", mutate: func(c *Config) { c.Booking.AvailabilitySource = "magic" }},
		{name: "calendar source without calendar", mutate: func(c *Config) { c.Booking.AvailabilitySource = AvailabilitySourceCombined }},
		{name: "calendar without credentials", mutate: func(c *Config) { c.Calendar.Enabled = true }},
		{name: "bad reminder", mutate: func(c *Config) { c.Calendar.Reminders = []ReminderConfig{{Method: "sms", Minutes: 5}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
