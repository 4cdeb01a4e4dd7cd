package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

type fakeBlockedRepo struct {
	dates []*domain.BlockedDate
	err   error
}

func (f *fakeBlockedRepo) List(context.Context) ([]*domain.BlockedDate, error) {
	return f.dates, f.err
}

type fakeBookingRepo struct {
	records []domain.BookingRecord
	err     error
}

func (f *fakeBookingRepo) ListAll(context.Context) ([]domain.BookingRecord, error) {
	return f.records, f.err
}

type fakeMetrics struct {
	offers      []int
	skipped     int
	storeErrors map[string]int
}

func (m *fakeMetrics) ObserveOffers(count int) { m.offers = append(m.offers, count) }
func (m *fakeMetrics) IncSkippedRecord()       { m.skipped++ }
func (m *fakeMetrics) IncStoreError(store, policy string) {
	if m.storeErrors == nil {
		m.storeErrors = map[string]int{}
	}
	m.storeErrors[store+"/"+policy]++
}

type fakeLogger struct {
	warns  []string
	errors []string
}

func (l *fakeLogger) Info(string, ...interface{}) {}
func (l *fakeLogger) Warn(format string, v ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}
func (l *fakeLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func date(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	blocked *fakeBlockedRepo
	booking *fakeBookingRepo
	metrics *fakeMetrics
	logger  *fakeLogger
	uc      *UseCase
}

// newFixture собирает use case с "сегодня" = today 09:00 по Сан-Паулу
func newFixture(t *testing.T, today string, policy domain.StoreErrorPolicy) *fixture {
	t.Helper()
	loc := saoPaulo(t)

	f := &fixture{
		blocked: &fakeBlockedRepo{},
		booking: &fakeBookingRepo{},
		metrics: &fakeMetrics{},
		logger:  &fakeLogger{},
	}
	f.uc = NewUseCase(f.blocked, f.booking, Settings{
		Schedule:     domain.DefaultSchedule(loc),
		Policy:       policy,
		StoreTimeout: time.Second,
	}, f.metrics, f.logger)
	f.uc.timeProvider = fixedTime{now: date(today).At("09:00", loc)}

	return f
}

func offerDates(offers []domain.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Date.String()
	}
	return out
}

func TestExecute_ConcreteScenario(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)
	f.blocked.dates = []*domain.BlockedDate{{Date: date("2025-05-14")}}
	f.booking.records = []domain.BookingRecord{{ID: "1", ScheduledAt: "2025-05-16T10:00:00-03:00"}}

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 7})
	require.NoError(t, err)

	assert.Equal(t, date("2025-05-12"), resp.Today)
	assert.Equal(t, []string{"2025-05-12", "2025-05-19"}, offerDates(resp.Offers))
	for _, o := range resp.Offers {
		assert.Equal(t, []types.TimeString{"10:00", "14:00"}, o.TimeSlots)
	}
	assert.Equal(t, []int{2}, f.metrics.offers)
}

func TestExecute_HorizonZero(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-12"}, offerDates(resp.Offers))

	f = newFixture(t, "2025-05-13", domain.StoreErrorEmptyResult)
	resp, err = f.uc.Execute(context.Background(), &Request{HorizonDays: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Offers)
}

func TestExecute_NegativeHorizon(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)

	_, err := f.uc.Execute(context.Background(), &Request{HorizonDays: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_WholeDayOccupancyAcrossFormats(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)
	f.booking.records = []domain.BookingRecord{
		{ID: "1", ScheduledAt: "2025-05-14T17:00:00.000Z"},
		{ID: "2", ScheduledAt: "16/05/2025 14:00"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-12", "2025-05-19"}, offerDates(resp.Offers))
}

func TestExecute_SkipsUnparseableRecords(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)
	f.booking.records = []domain.BookingRecord{
		{ID: "bad", ScheduledAt: "sexta-feira"},
		{ID: "ok", ScheduledAt: "2025-05-14T10:00:00-03:00"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 7})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-05-12", "2025-05-16", "2025-05-19"}, offerDates(resp.Offers))
	assert.Equal(t, 1, f.metrics.skipped)
	require.Len(t, f.logger.warns, 1)
	assert.Contains(t, f.logger.warns[0], "id=bad")
}

func TestExecute_TodayFollowsCanonicalTimezone(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)
	// 02:00 UTC вторника = 23:00 понедельника в Сан-Паулу
	f.uc.timeProvider = fixedTime{now: time.Date(2025, time.May, 13, 2, 0, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-12"}, offerDates(resp.Offers))
}

func TestExecute_StoreErrorEmptyResult(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		store string
	}{
		{
			name:  "booking records unavailable",
			setup: func(f *fixture) { f.booking.err = errors.New("disk I/O error") },
			store: storeBookingRecords,
		},
		{
			name:  "blocked dates unavailable",
			setup: func(f *fixture) { f.blocked.err = context.DeadlineExceeded },
			store: storeBlockedDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "2025-05-12", domain.StoreErrorEmptyResult)
			tt.setup(f)

			resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 30})
			require.NoError(t, err)
			assert.NotNil(t, resp.Offers)
			assert.Empty(t, resp.Offers)
			assert.Equal(t, 1, f.metrics.storeErrors[tt.store+"/empty_result"])
			assert.Len(t, f.logger.errors, 1)
		})
	}
}

func TestExecute_StoreErrorPropagate(t *testing.T) {
	f := newFixture(t, "2025-05-12", domain.StoreErrorPropagate)
	f.booking.err = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 30})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExecute_DefaultPolicyIsEmptyResult(t *testing.T) {
	f := newFixture(t, "2025-05-12", "")
	f.blocked.err = errors.New("boom")

	resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: 30})
	require.NoError(t, err)
	assert.Empty(t, resp.Offers)
}

// Свойства проверяются на случайных наборах блокировок и записей
func TestExecute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	loc := saoPaulo(t)
	today := date("2025-05-12")

	for iter := 0; iter < 200; iter++ {
		horizon := rng.Intn(70)

		var blocked []*domain.BlockedDate
		var records []domain.BookingRecord
		blockedCount, recordCount := rng.Intn(15), rng.Intn(15)
		for i := 0; i < blockedCount; i++ {
			blocked = append(blocked, &domain.BlockedDate{Date: today.AddDays(rng.Intn(80) - 5)})
		}
		for i := 0; i < recordCount; i++ {
			day := today.AddDays(rng.Intn(80) - 5)
			slot := domain.DefaultSchedule(loc).TimeSlots[rng.Intn(2)]
			raw := domain.FormatScheduledAt(day.At(slot, loc))
			if rng.Intn(2) == 0 {
				raw = fmt.Sprintf("%02d/%02d/%04d %s", day.Day(), day.Month(), day.Year(), slot)
			}
			records = append(records, domain.BookingRecord{ID: fmt.Sprint(i), ScheduledAt: raw})
		}

		f := newFixture(t, today.String(), domain.StoreErrorEmptyResult)
		f.blocked.dates = blocked
		f.booking.records = records

		resp, err := f.uc.Execute(context.Background(), &Request{HorizonDays: horizon})
		require.NoError(t, err)

		offered := map[types.Date]bool{}
		var prev types.Date
		for i, o := range resp.Offers {
			offered[o.Date] = true

			wd := o.Date.Weekday()
			assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, wd)
			assert.False(t, o.Date.Before(today), "before today: %s", o.Date)
			assert.False(t, o.Date.After(today.AddDays(horizon)), "after horizon: %s", o.Date)
			if i > 0 {
				assert.True(t, prev.Before(o.Date), "offers must be ascending")
			}
			prev = o.Date
		}

		for _, bd := range blocked {
			assert.False(t, offered[bd.Date], "blocked day offered: %s", bd.Date)
		}
		for _, rec := range records {
			day, err := domain.ExtractScheduledDay(rec.ScheduledAt, loc)
			require.NoError(t, err)
			assert.False(t, offered[day], "occupied day offered: %s", day)
		}
	}
}
