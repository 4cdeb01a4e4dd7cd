package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "db"
port = 5432
user = "scheduler"
password = "from-file"
dbname = "trainings"

[mirror]
path = "/tmp/mirror.db"

[schedule]
timezone = "America/Sao_Paulo"
weekdays = ["monday", "wednesday", "friday"]
time_slots = ["10:00", "14:00"]
booking_horizon_days = 30
admin_horizon_days = 60

[availability]
on_store_error = "propagate"
store_timeout = 3
booking_source = "primary"

[invite]
meeting_links = ["https://meet.example.com/a", "https://meet.example.com/b"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout, "defaults survive partial files")
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, domain.StoreErrorPropagate, cfg.Availability.StoreErrorPolicy())
	assert.Equal(t, 3*time.Second, cfg.Availability.StoreTimeoutDuration())
	assert.Len(t, cfg.Invite.MeetingLinks, 2)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
	assert.Contains(t, cfg.Database.DSN(), "dbname=trainings")
}

func TestLoad_EnvOverridesSecretsAndPolicy(t *testing.T) {
	t.Setenv("SMTP_PASSWORD", "secret-from-env")
	t.Setenv("REDIS_PASSWORD", "redis-from-env")
	t.Setenv("AVAILABILITY_ON_STORE_ERROR", "empty_result")
	t.Setenv("AVAILABILITY_BOOKING_SOURCE", "mirror")

	body := sampleConfig + `
[smtp]
password = "file"

[ratelimit]
redis_password = "file"
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, "secret-from-env", cfg.SMTP.Password)
	assert.Equal(t, "redis-from-env", cfg.RateLimit.RedisPassword)
	assert.Equal(t, domain.StoreErrorEmptyResult, cfg.Availability.StoreErrorPolicy())
	assert.Equal(t, string(domain.BookingSourceMirror), cfg.Availability.BookingSource)
}

func TestLoad_UnsetEnvKeepsFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Database.Password)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, string(domain.BookingSourcePrimary), cfg.Availability.BookingSource)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("AVAILABILITY_ON_STORE_ERROR", "ignore")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorContains(t, err, "on_store_error")
}

func TestScheduleConfig_Build(t *testing.T) {
	s := Default().Schedule
	s.Weekdays = []string{"Tuesday", "thursday"}
	s.TimeSlots = []string{"09:30"}

	schedule, err := s.Build()
	require.NoError(t, err)

	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, schedule.Weekdays)
	assert.Equal(t, []types.TimeString{"09:30"}, schedule.TimeSlots)
	assert.Equal(t, "America/Sao_Paulo", schedule.Location.String())
	assert.Equal(t, 30, schedule.BookingHorizonDays)
	assert.Equal(t, 60, schedule.AdminHorizonDays)
}

func TestScheduleConfig_BuildErrors(t *testing.T) {
	s := Default().Schedule
	s.Weekdays = []string{"someday"}
	_, err := s.Build()
	assert.Error(t, err)

	s = Default().Schedule
	s.TimeSlots = []string{"25:00"}
	_, err = s.Build()
	assert.Error(t, err)

	s = Default().Schedule
	s.Timezone = "Mars/Olympus"
	_, err = s.Build()
	assert.Error(t, err)

	s = Default().Schedule
	s.BookingHorizonDays = -1
	_, err = s.Build()
	assert.Error(t, err)
}

func TestValidate_RateLimitRequiresRedis(t *testing.T) {
	cfg := Default()
	cfg.Database.DBName = "trainings"
	require.NoError(t, cfg.Validate())

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RedisAddr = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_TrustedProxies(t *testing.T) {
	cfg := Default()
	cfg.Database.DBName = "trainings"
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.TrustedProxies = []string{"10.0.0.0/8", "172.16.0.5"}
	require.NoError(t, cfg.Validate())

	cfg.RateLimit.TrustedProxies = []string{"proxy.local"}
	assert.ErrorContains(t, cfg.Validate(), "trusted_proxies")
}
