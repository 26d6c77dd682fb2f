package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	businessHoursHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/business_hours"
	calendarHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/calendar"
	cancelAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/check_slot"
	contactsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/contacts"
	createAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_appointment"
	exportAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/export_appointments"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_appointments"
	servicesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/services"
	updateAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	hoursRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/businesshours"
	contactRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/contact"
	servicesRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/googlecalendar"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	catalogService "github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	contactsService "github.com/m04kA/SMC-BarberBooking/internal/service/contacts"
	checkSlotUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/check_slot"
	createAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-BarberBooking/migrations"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/phone"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	servicesRepository := servicesRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	contactRepository := contactRepo.NewRepository(wrappedDB)

	// Внешний календарь (если включен)
	var calendarClient *googlecalendar.Client
	if cfg.Calendar.Enabled {
		calendarClient, err = newCalendarClient(cfg.Calendar, loc, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to initialize calendar client: %v", err)
		}
		log.Info("Calendar client initialized (calendar=%s, timezone=%s, timeout=%ds)",
			cfg.Calendar.CalendarID, cfg.Calendar.Timezone, cfg.Calendar.TimeoutSeconds)
	}

	// Интерфейсы календаря остаются nil, если интеграция выключена
	var (
		createMirror createAppointmentUC.CalendarMirror
		updateMirror updateAppointmentUC.CalendarMirror
		cancelMirror appointmentsService.CalendarMirror
		calendarView calendarHandler.CalendarClient
	)
	if calendarClient != nil {
		createMirror = calendarClient
		updateMirror = calendarClient
		cancelMirror = calendarClient
		calendarView = calendarClient
	}

	// Источник занятости для движка доступности
	localSource := availability.NewLocalSource(appointmentRepository, loc)
	var busy availability.BusySource
	switch cfg.Booking.AvailabilitySource {
	case config.AvailabilitySourceCalendar:
		busy = availability.NewCalendarSource(calendarClient, cfg.Calendar.Timeout())
	case config.AvailabilitySourceCombined:
		busy = availability.NewCombinedSource(localSource, availability.NewCalendarSource(calendarClient, cfg.Calendar.Timeout()))
	default:
		busy = localSource
	}
	log.Info("Availability source: %s", cfg.Booking.AvailabilitySource)

	engine := availability.NewEngine(
		servicesRepository,
		hoursRepository,
		busy,
		&availability.RealTimeProvider{},
		availability.Policy{
			StepMinutes:    cfg.Booking.SlotStepMinutes,
			MinAdvance:     time.Duration(cfg.Booking.MinAdvanceMinutes) * time.Minute,
			MaxAdvanceDays: cfg.Booking.MaxAdvanceDays,
			Location:       loc,
		},
		log,
	)

	inputValidator := validator.New()
	phones := phone.NewNormalizer(cfg.Booking.PhoneRegion)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		servicesRepository,
		hoursRepository,
		appointmentRepository,
		inputValidator,
		txMgr,
		loc,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		cancelMirror,
		metricsCollector,
		txMgr,
		loc,
		log,
	)
	contactsSvc := contactsService.NewService(contactRepository, inputValidator, phones, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		engine,
		createMirror,
		inputValidator,
		phones,
		metricsCollector,
		txMgr,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		engine,
		updateMirror,
		inputValidator,
		phones,
		metricsCollector,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(servicesRepository, engine, log)
	checkSlotUseCase := checkSlotUC.NewUseCase(engine, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	exportAppointments := exportAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	servicesH := servicesHandler.NewHandler(catalogSvc, log)
	businessHours := businessHoursHandler.NewHandler(catalogSvc, log)
	contactsH := contactsHandler.NewHandler(contactsSvc, log)
	calendarH := calendarHandler.NewHandler(calendarView, cfg.Booking.AvailabilitySource, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter, closeLimiter := newLimiter(cfg.RateLimit, log)
		defer closeLimiter()
		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.FailOpen, log))
	}

	// --- Услуги ---
	api.HandleFunc("/services", servicesH.List).Methods(http.MethodGet)
	api.HandleFunc("/services", servicesH.Create).Methods(http.MethodPost)
	api.HandleFunc("/services/{id:[0-9]+}", servicesH.Get).Methods(http.MethodGet)
	api.HandleFunc("/services/{id:[0-9]+}", servicesH.Update).Methods(http.MethodPut)
	api.HandleFunc("/services/{id:[0-9]+}", servicesH.Delete).Methods(http.MethodDelete)

	// --- Часы работы ---
	api.HandleFunc("/business-hours", businessHours.List).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/open", businessHours.IsOpen).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/{day}", businessHours.Get).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/{day}", businessHours.Upsert).Methods(http.MethodPut)
	api.HandleFunc("/business-hours/{day}/toggle", businessHours.Toggle).Methods(http.MethodPatch)

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", checkSlot.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/export.ics", exportAppointments.HandleICS).Methods(http.MethodGet)
	api.HandleFunc("/appointments/export.xlsx", exportAppointments.HandleXLSX).Methods(http.MethodGet)
	api.HandleFunc("/appointments/date/{date}", listAppointments.HandleByDate).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Календарь ---
	api.HandleFunc("/calendar/events", calendarH.Events).Methods(http.MethodGet)
	api.HandleFunc("/calendar/config", calendarH.Config).Methods(http.MethodGet)

	// --- Обращения ---
	api.HandleFunc("/contacts", contactsH.List).Methods(http.MethodGet)
	api.HandleFunc("/contacts", contactsH.Create).Methods(http.MethodPost)
	api.HandleFunc("/contacts/stats", contactsH.Stats).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id:[0-9]+}", contactsH.Get).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id:[0-9]+}", contactsH.Update).Methods(http.MethodPut)
	api.HandleFunc("/contacts/{id:[0-9]+}", contactsH.Delete).Methods(http.MethodDelete)

	// Статика фронтенда
	if cfg.Server.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Server.StaticDir)))
		log.Info("Serving static files from %s", cfg.Server.StaticDir)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func newCalendarClient(cfg config.CalendarConfig, loc *time.Location, m *metrics.Metrics, log *logger.Logger) (*googlecalendar.Client, error) {
	ctx := context.Background()

	httpClient, err := googlecalendar.NewHTTPClient(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	reminders := make([]googlecalendar.Reminder, 0, len(cfg.Reminders))
	for _, r := range cfg.Reminders {
		reminders = append(reminders, googlecalendar.Reminder{Method: r.Method, Minutes: r.Minutes})
	}

	return googlecalendar.NewClient(ctx, httpClient, googlecalendar.Config{
		CalendarID: cfg.CalendarID,
		Timezone:   cfg.Timezone,
		Location:   loc,
		Timeout:    cfg.Timeout(),
		Reminders:  reminders,
	}, m, log)
}

// newLimiter общий лимит в Redis, если задан адрес, иначе лимит в памяти процесса
func newLimiter(cfg config.RateLimitConfig, log *logger.Logger) (middleware.Limiter, func()) {
	if cfg.RedisAddr == "" {
		log.Info("Rate limit: in-memory, rps=%.1f, burst=%d", cfg.RPS, cfg.Burst)
		return middleware.NewMemoryLimiter(cfg.RPS, cfg.Burst), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Rate limit: redis %s unreachable at startup: %v", cfg.RedisAddr, err)
	}

	log.Info("Rate limit: redis %s, limit=%d per %s, fail_open=%t", cfg.RedisAddr, cfg.Limit, cfg.Window(), cfg.FailOpen)
	return middleware.NewRedisLimiter(rdb, cfg.Limit, cfg.Window()), func() { _ = rdb.Close() }
}
