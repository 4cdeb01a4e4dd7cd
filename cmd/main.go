package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	blockDateHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/block_date"
	checkAdmissionHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/check_admission"
	getAdminCalendarHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/get_admin_calendar"
	getAvailableDatesHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/get_available_dates"
	getScheduleConfigHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/get_schedule_config"
	getTrainingHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/get_training"
	healthHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/health"
	listBlockedDatesHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/list_blocked_dates"
	listTrainingsHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/list_trainings"
	submitTrainingHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/submit_training"
	unblockDateHandler "github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers/unblock_date"
	"github.com/m04kA/SMC-TrainingScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingScheduler/internal/config"
	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-TrainingScheduler/internal/infra/storage/blockeddate"
	mirrorRepo "github.com/m04kA/SMC-TrainingScheduler/internal/infra/storage/mirror"
	trainingRepo "github.com/m04kA/SMC-TrainingScheduler/internal/infra/storage/training"
	"github.com/m04kA/SMC-TrainingScheduler/internal/integrations/mailer"
	blockedDatesService "github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates"
	trainingsService "github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings"
	checkAdmissionUC "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
	getAvailableDatesUC "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/get_available_dates"
	submitTrainingUC "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/submit_training"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/logger"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/metrics"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/txmanager"
)

// BookingRecordRepository источник записей для расчета занятости
type BookingRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.BookingRecord, error)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-TrainingScheduler...")

	schedule, err := cfg.Schedule.Build()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	policy := cfg.Availability.StoreErrorPolicy()
	log.Info("Schedule: timezone=%s, weekdays=%v, slots=%v, booking_horizon=%d, admin_horizon=%d, on_store_error=%s",
		schedule.Loc(), schedule.Weekdays, schedule.TimeSlots, schedule.BookingHorizonDays, schedule.AdminHorizonDays, policy)

	// Инициализируем метрики (если включены). nil-коллектор безопасен для вызовов
	var metricsCollector *metrics.Metrics
	registry := prometheus.NewRegistry()
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, registry)
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Локальная копия записей
	mirror, err := mirrorRepo.Open(cfg.Mirror.Path)
	if err != nil {
		log.Fatal("Failed to open mirror store %s: %v", cfg.Mirror.Path, err)
	}
	defer mirror.Close()
	log.Info("Mirror store opened at %s", cfg.Mirror.Path)

	// Инициализируем репозитории
	blockedRepository := blockedDateRepo.NewRepository(wrappedDB)
	trainingRepository := trainingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	var bookingSource BookingRecordRepository = mirror
	if domain.BookingSource(cfg.Availability.BookingSource) == domain.BookingSourcePrimary {
		bookingSource = trainingRepository
	}
	log.Info("Occupancy is read from %s store", cfg.Availability.BookingSource)

	// Почтовый клиент
	mailClient := mailer.NewClient(mailer.Settings{
		Enabled:      cfg.SMTP.Enabled,
		Host:         cfg.SMTP.Host,
		Port:         cfg.SMTP.Port,
		Username:     cfg.SMTP.Username,
		Password:     cfg.SMTP.Password,
		From:         cfg.SMTP.From,
		FromName:     cfg.SMTP.FromName,
		TLS:          cfg.SMTP.TLS,
		Timeout:      time.Duration(cfg.SMTP.Timeout) * time.Second,
		Subject:      cfg.Invite.Subject,
		Duration:     time.Duration(cfg.Invite.DurationMinutes) * time.Minute,
		MeetingLinks: cfg.Invite.MeetingLinks,
		Organizer:    cfg.Invite.Organizer,
		Location:     schedule.Loc(),
	}, log)
	log.Info("Mailer initialized (enabled=%t, host=%s, meeting_links=%d)",
		cfg.SMTP.Enabled, cfg.SMTP.Host, len(cfg.Invite.MeetingLinks))

	// Инициализируем сервисы
	blockedDatesSvc := blockedDatesService.NewService(blockedRepository, bookingSource, schedule, log)
	trainingsSvc := trainingsService.NewService(trainingRepository, schedule.Loc(), log)

	// Инициализируем use cases
	storeTimeout := cfg.Availability.StoreTimeoutDuration()

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		blockedRepository,
		bookingSource,
		getAvailableDatesUC.Settings{Schedule: schedule, Policy: policy, StoreTimeout: storeTimeout},
		metricsCollector,
		log,
	)

	checkAdmissionUseCase := checkAdmissionUC.NewUseCase(
		blockedRepository,
		bookingSource,
		checkAdmissionUC.Settings{Location: schedule.Loc(), Policy: policy, StoreTimeout: storeTimeout},
		metricsCollector,
		log,
	)

	submitTrainingUseCase := submitTrainingUC.NewUseCase(
		checkAdmissionUseCase,
		trainingRepository,
		mirror,
		mailClient,
		txMgr,
		submitTrainingUC.Settings{Schedule: schedule},
		metricsCollector,
		log,
	)

	// Redis для ограничения частоты запросов
	var rdb *redis.Client
	var trustedProxies []*net.IPNet
	if cfg.RateLimit.Enabled {
		trustedProxies, err = middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid trusted proxies: %v", err)
		}

		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, rate limiting fails open: %v", cfg.RateLimit.RedisAddr, err)
		} else {
			log.Info("Rate limiting enabled (redis=%s)", cfg.RateLimit.RedisAddr)
		}
		cancel()
	}

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, schedule.BookingHorizonDays, log)
	checkAdmission := checkAdmissionHandler.NewHandler(checkAdmissionUseCase, log)
	submitTraining := submitTrainingHandler.NewHandler(submitTrainingUseCase, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(schedule, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(blockedDatesSvc, log)
	blockDate := blockDateHandler.NewHandler(blockedDatesSvc, log)
	unblockDate := unblockDateHandler.NewHandler(blockedDatesSvc, log)
	getAdminCalendar := getAdminCalendarHandler.NewHandler(blockedDatesSvc, log)
	listTrainings := listTrainingsHandler.NewHandler(trainingsSvc, log)
	getTraining := getTrainingHandler.NewHandler(trainingsSvc, log)

	readinessChecks := map[string]healthHandler.Pinger{
		"postgres": wrappedDB,
		"mirror":   healthHandler.PingFunc(mirror.Ping),
	}
	if rdb != nil {
		readinessChecks["redis"] = healthHandler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	health := healthHandler.NewHandler(readinessChecks, 3*time.Second, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-dates/{date}/admission", checkAdmission.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getScheduleConfig.Handle).Methods(http.MethodGet)

	submit := api.PathPrefix("/trainings").Subrouter()
	if rdb != nil {
		submit.Use(middleware.RateLimit(middleware.NewRedisCounter(rdb), middleware.RateLimitSettings{
			Scope:          "submit",
			Prefix:         cfg.RateLimit.KeyPrefix,
			Limit:          cfg.RateLimit.SubmitLimit,
			Window:         time.Duration(cfg.RateLimit.Window) * time.Second,
			TrustedProxies: trustedProxies,
		}, metricsCollector, log))
	}
	submit.HandleFunc("", submitTraining.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	if rdb != nil {
		admin.Use(middleware.RateLimit(middleware.NewRedisCounter(rdb), middleware.RateLimitSettings{
			Scope:          "admin",
			Prefix:         cfg.RateLimit.KeyPrefix,
			Limit:          cfg.RateLimit.AdminLimit,
			Window:         time.Duration(cfg.RateLimit.Window) * time.Second,
			TrustedProxies: trustedProxies,
		}, metricsCollector, log))
	}

	// --- Заблокированные даты ---
	admin.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates/{date}", blockDate.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/calendar", getAdminCalendar.Handle).Methods(http.MethodGet)

	// --- Записи на тренинг ---
	admin.HandleFunc("/trainings", listTrainings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/trainings/{trainingId}", getTraining.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
