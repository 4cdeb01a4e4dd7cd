package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Mirror       MirrorConfig       `toml:"mirror"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Schedule     ScheduleConfig     `toml:"schedule"`
	Availability AvailabilityConfig `toml:"availability"`
	SMTP         SMTPConfig         `toml:"smtp"`
	Invite       InviteConfig       `toml:"invite"`
	RateLimit    RateLimitConfig    `toml:"ratelimit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT" env-upd:""`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST" env-upd:""`
	Port            int    `toml:"port" env:"DB_PORT" env-upd:""`
	User            string `toml:"user" env:"DB_USER" env-upd:""`
	Password        string `toml:"password" env:"DB_PASSWORD" env-upd:""`
	DBName          string `toml:"dbname" env:"DB_NAME" env-upd:""`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE" env-upd:""`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// MirrorConfig локальная копия записей (файл SQLite)
type MirrorConfig struct {
	Path string `toml:"path" env:"MIRROR_PATH" env-upd:""`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE" env-upd:""`
	Level string `toml:"level" env:"LOG_LEVEL" env-upd:""`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED" env-upd:""`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig правила расписания
type ScheduleConfig struct {
	Timezone           string   `toml:"timezone" env:"SCHEDULE_TIMEZONE" env-upd:""`
	Weekdays           []string `toml:"weekdays"`
	TimeSlots          []string `toml:"time_slots"`
	BookingHorizonDays int      `toml:"booking_horizon_days"`
	AdminHorizonDays   int      `toml:"admin_horizon_days"`
}

// AvailabilityConfig поведение расчета доступности
type AvailabilityConfig struct {
	OnStoreError  string `toml:"on_store_error" env:"AVAILABILITY_ON_STORE_ERROR" env-upd:""`
	StoreTimeout  int    `toml:"store_timeout"` // секунды
	BookingSource string `toml:"booking_source" env:"AVAILABILITY_BOOKING_SOURCE" env-upd:""`
}

// SMTPConfig настройки почтового сервера
type SMTPConfig struct {
	Enabled  bool   `toml:"enabled" env:"SMTP_ENABLED" env-upd:""`
	Host     string `toml:"host" env:"SMTP_HOST" env-upd:""`
	Port     int    `toml:"port" env:"SMTP_PORT" env-upd:""`
	Username string `toml:"username" env:"SMTP_USERNAME" env-upd:""`
	Password string `toml:"password" env:"SMTP_PASSWORD" env-upd:""`
	From     string `toml:"from" env:"SMTP_FROM" env-upd:""`
	FromName string `toml:"from_name"`
	TLS      bool   `toml:"tls"`
	Timeout  int    `toml:"timeout"` // секунды
}

// InviteConfig параметры приглашения
type InviteConfig struct {
	Subject         string   `toml:"subject"`
	DurationMinutes int      `toml:"duration_minutes"`
	MeetingLinks    []string `toml:"meeting_links" env:"INVITE_MEETING_LINKS" env-upd:""`
	Organizer       string   `toml:"organizer"`
}

// RateLimitConfig ограничение частоты запросов (Redis)
type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled" env:"RATELIMIT_ENABLED" env-upd:""`
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR" env-upd:""`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD" env-upd:""`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB" env-upd:""`
	KeyPrefix     string `toml:"key_prefix"`
	SubmitLimit   int    `toml:"submit_limit"`
	AdminLimit    int    `toml:"admin_limit"`
	Window        int    `toml:"window"` // секунды

	// TrustedProxies CIDR или IP прокси, от которых принимается X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies" env:"RATELIMIT_TRUSTED_PROXIES" env-upd:""`
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mirror: MirrorConfig{Path: "data/trainings.db"},
		Logs:   LogsConfig{File: "logs/app.log", Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_training_scheduler",
		},
		Schedule: ScheduleConfig{
			Timezone:           domain.DefaultTimezone,
			Weekdays:           []string{"monday", "wednesday", "friday"},
			TimeSlots:          append([]string(nil), domain.DefaultTimeSlots...),
			BookingHorizonDays: domain.DefaultBookingHorizonDays,
			AdminHorizonDays:   domain.DefaultAdminHorizonDays,
		},
		Availability: AvailabilityConfig{
			OnStoreError:  string(domain.StoreErrorEmptyResult),
			StoreTimeout:  5,
			BookingSource: string(domain.BookingSourceMirror),
		},
		SMTP: SMTPConfig{Port: 587, Timeout: 10},
		Invite: InviteConfig{
			Subject:         "Agendamento de Treinamento",
			DurationMinutes: int(domain.DefaultInviteDuration / time.Minute),
		},
		RateLimit: RateLimitConfig{
			RedisAddr:   "localhost:6379",
			KeyPrefix:   "training-scheduler:rl",
			SubmitLimit: 5,
			AdminLimit:  60,
			Window:      60,
		},
	}
}

// Load читает .env (если есть), TOML файл и переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Mirror.Path == "" {
		errs = append(errs, errors.New("mirror.path is required"))
	}
	if _, err := c.Schedule.Build(); err != nil {
		errs = append(errs, err)
	}
	if _, err := domain.ParseStoreErrorPolicy(c.Availability.OnStoreError); err != nil {
		errs = append(errs, fmt.Errorf("availability.on_store_error: %w", err))
	}
	if c.Availability.StoreTimeout <= 0 {
		errs = append(errs, errors.New("availability.store_timeout must be positive"))
	}
	switch domain.BookingSource(c.Availability.BookingSource) {
	case domain.BookingSourceMirror, domain.BookingSourcePrimary:
	default:
		errs = append(errs, fmt.Errorf("availability.booking_source must be mirror or primary, got %q", c.Availability.BookingSource))
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		errs = append(errs, errors.New("smtp.host and smtp.from are required when smtp is enabled"))
	}
	if c.Invite.DurationMinutes <= 0 {
		errs = append(errs, errors.New("invite.duration_minutes must be positive"))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RedisAddr == "" {
			errs = append(errs, errors.New("ratelimit.redis_addr is required when rate limiting is enabled"))
		}
		if c.RateLimit.SubmitLimit <= 0 || c.RateLimit.AdminLimit <= 0 || c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("ratelimit limits and window must be positive"))
		}
		for _, p := range c.RateLimit.TrustedProxies {
			if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
				errs = append(errs, fmt.Errorf("ratelimit.trusted_proxies: invalid entry %q", p))
			}
		}
	}

	return errors.Join(errs...)
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StoreErrorPolicy разобранная политика ошибок хранилища
func (a AvailabilityConfig) StoreErrorPolicy() domain.StoreErrorPolicy {
	policy, err := domain.ParseStoreErrorPolicy(a.OnStoreError)
	if err != nil {
		return domain.StoreErrorEmptyResult
	}
	return policy
}

// StoreTimeoutDuration таймаут чтения хранилищ
func (a AvailabilityConfig) StoreTimeoutDuration() time.Duration {
	return time.Duration(a.StoreTimeout) * time.Second
}

// Build собирает domain.Schedule из конфигурации
func (s ScheduleConfig) Build() (domain.Schedule, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("schedule.timezone %q: %w", s.Timezone, err)
	}

	schedule := domain.DefaultSchedule(loc)

	if len(s.Weekdays) > 0 {
		weekdays := make([]time.Weekday, 0, len(s.Weekdays))
		for _, name := range s.Weekdays {
			wd, err := parseWeekday(name)
			if err != nil {
				return domain.Schedule{}, err
			}
			weekdays = append(weekdays, wd)
		}
		schedule.Weekdays = weekdays
	}

	if len(s.TimeSlots) > 0 {
		slots := make([]types.TimeString, 0, len(s.TimeSlots))
		for _, raw := range s.TimeSlots {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return domain.Schedule{}, fmt.Errorf("schedule.time_slots: %w", err)
			}
			slots = append(slots, ts)
		}
		schedule.TimeSlots = slots
	}

	if s.BookingHorizonDays < 0 || s.BookingHorizonDays > domain.MaxHorizonDays {
		return domain.Schedule{}, fmt.Errorf("schedule.booking_horizon_days out of range: %d", s.BookingHorizonDays)
	}
	if s.AdminHorizonDays < 0 || s.AdminHorizonDays > domain.MaxHorizonDays {
		return domain.Schedule{}, fmt.Errorf("schedule.admin_horizon_days out of range: %d", s.AdminHorizonDays)
	}
	schedule.BookingHorizonDays = s.BookingHorizonDays
	schedule.AdminHorizonDays = s.AdminHorizonDays

	return schedule, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), strings.TrimSpace(name)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("schedule.weekdays: unknown weekday %q", name)
}
