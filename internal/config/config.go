package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	AvailabilitySourceLocal    = "local"
	AvailabilitySourceCalendar = "calendar"
	AvailabilitySourceCombined = "combined"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Calendar  CalendarConfig  `toml:"calendar"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	StaticDir       string   `toml:"static_dir"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила расчета доступности
type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	SlotStepMinutes    int    `toml:"slot_step_minutes"`
	MinAdvanceMinutes  int    `toml:"min_advance_minutes"`
	MaxAdvanceDays     int    `toml:"max_advance_days"`
	AvailabilitySource string `toml:"availability_source"`
	PhoneRegion        string `toml:"phone_region"`
}

// Location разобранная временная зона
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type ReminderConfig struct {
	Method  string `toml:"method"`
	Minutes int64  `toml:"minutes"`
}

type CalendarConfig struct {
	Enabled         bool             `toml:"enabled"`
	CalendarID      string           `toml:"calendar_id"`
	Timezone        string           `toml:"timezone"`
	CredentialsFile string           `toml:"credentials_file"`
	TokenFile       string           `toml:"token_file"`
	TimeoutSeconds  int              `toml:"timeout_seconds"`
	Reminders       []ReminderConfig `toml:"reminders"`
}

// Timeout таймаут одного вызова календаря
func (c CalendarConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool    `toml:"enabled"`
	RPS           float64 `toml:"rps"`
	Burst         int     `toml:"burst"`
	Limit         int     `toml:"limit"`
	WindowSeconds int     `toml:"window_seconds"`
	RedisAddr     string  `toml:"redis_addr"`
	RedisPassword string  `toml:"redis_password"`
	RedisDB       int     `toml:"redis_db"`
	FailOpen      bool    `toml:"fail_open"`
}

// Window окно фиксированного лимита
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Load читает .env (если есть), подставляет переменные окружения в TOML и проверяет результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(os.ExpandEnv(string(raw)), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barber_booking"
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "America/Sao_Paulo"
	}
	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = 30
	}
	if c.Booking.MinAdvanceMinutes == 0 {
		c.Booking.MinAdvanceMinutes = 120
	}
	if c.Booking.MaxAdvanceDays == 0 {
		c.Booking.MaxAdvanceDays = 30
	}
	if c.Booking.AvailabilitySource == "" {
		c.Booking.AvailabilitySource = AvailabilitySourceLocal
	}
	if c.Booking.PhoneRegion == "" {
		c.Booking.PhoneRegion = "BR"
	}
	if c.Calendar.CalendarID == "" {
		c.Calendar.CalendarID = "primary"
	}
	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = c.Booking.Timezone
	}
	if c.Calendar.TimeoutSeconds == 0 {
		c.Calendar.TimeoutSeconds = 5
	}
	if len(c.Calendar.Reminders) == 0 {
		c.Calendar.Reminders = []ReminderConfig{
			{Method: "email", Minutes: 24 * 60},
			{Method: "popup", Minutes: 60},
		}
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 120
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Booking.SlotStepMinutes != 15 && c.Booking.SlotStepMinutes != 30 {
		return fmt.Errorf("config: booking.slot_step_minutes must be 15 or 30, got %d", c.Booking.SlotStepMinutes)
	}
	if c.Booking.MinAdvanceMinutes < 0 || c.Booking.MaxAdvanceDays < 0 {
		return errors.New("config: booking advance limits must not be negative")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: invalid booking.timezone %q: %w", c.Booking.Timezone, err)
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("config: invalid calendar.timezone %q: %w", c.Calendar.Timezone, err)
	}

	switch c.Booking.AvailabilitySource {
	case AvailabilitySourceLocal:
	case AvailabilitySourceCalendar, AvailabilitySourceCombined:
		if !c.Calendar.Enabled {
			return fmt.Errorf("config: availability_source=%s requires calendar.enabled", c.Booking.AvailabilitySource)
		}
	default:
		return fmt.Errorf("config: unknown booking.availability_source %q", c.Booking.AvailabilitySource)
	}

	if c.Calendar.Enabled && c.Calendar.CredentialsFile == "" {
		return errors.New("config: calendar.credentials_file is required when calendar is enabled")
	}
	for _, r := range c.Calendar.Reminders {
		if r.Method != "email" && r.Method != "popup" {
			return fmt.Errorf("config: unknown reminder method %q", r.Method)
		}
	}

	return nil
}
