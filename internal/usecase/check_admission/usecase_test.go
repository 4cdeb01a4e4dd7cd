package check_admission

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

type fakeBlockedRepo struct {
	dates map[types.Date]bool
	err   error
	calls int
}

func (f *fakeBlockedRepo) Exists(_ context.Context, date types.Date) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.dates[date], nil
}

type fakeBookingRepo struct {
	records []domain.BookingRecord
	err     error
	calls   int
}

func (f *fakeBookingRepo) ListAll(context.Context) ([]domain.BookingRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeMetrics struct {
	rejected    map[string]int
	skipped     int
	storeErrors int
}

func (m *fakeMetrics) IncAdmissionRejected(reason string) {
	if m.rejected == nil {
		m.rejected = map[string]int{}
	}
	m.rejected[reason]++
}
func (m *fakeMetrics) IncSkippedRecord()            { m.skipped++ }
func (m *fakeMetrics) IncStoreError(string, string) { m.storeErrors++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newUseCase(t *testing.T, blocked *fakeBlockedRepo, booking *fakeBookingRepo, policy domain.StoreErrorPolicy) (*UseCase, *fakeMetrics) {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)

	m := &fakeMetrics{}
	return NewUseCase(blocked, booking, Settings{
		Location:     loc,
		Policy:       policy,
		StoreTimeout: time.Second,
	}, m, nopLogger{}), m
}

func TestExecute_RejectionReasons(t *testing.T) {
	blocked := &fakeBlockedRepo{dates: map[types.Date]bool{date("2025-05-14"): true}}
	booking := &fakeBookingRepo{records: []domain.BookingRecord{
		{ID: "1", ScheduledAt: "2025-05-16T10:00:00-03:00"},
	}}
	uc, m := newUseCase(t, blocked, booking, domain.StoreErrorEmptyResult)

	tests := []struct {
		date       string
		admissible bool
		reason     string
	}{
		{date: "2025-05-14", admissible: false, reason: domain.ReasonBlocked},
		{date: "2025-05-16", admissible: false, reason: domain.ReasonOccupied},
		{date: "2025-05-19", admissible: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{Date: date(tt.date)})
			require.NoError(t, err)

			assert.Equal(t, tt.admissible, resp.Admissible)
			if tt.reason == "" {
				assert.Nil(t, resp.Reason)
				return
			}
			require.NotNil(t, resp.Reason)
			assert.Equal(t, tt.reason, *resp.Reason)
		})
	}

	assert.Equal(t, 1, m.rejected[domain.ReasonBlocked])
	assert.Equal(t, 1, m.rejected[domain.ReasonOccupied])
}

func TestExecute_BlockedTakesPrecedence(t *testing.T) {
	d := date("2025-05-14")
	blocked := &fakeBlockedRepo{dates: map[types.Date]bool{d: true}}
	booking := &fakeBookingRepo{records: []domain.BookingRecord{{ID: "1", ScheduledAt: "14/05/2025 10:00"}}}
	uc, _ := newUseCase(t, blocked, booking, domain.StoreErrorEmptyResult)

	resp, err := uc.Execute(context.Background(), &Request{Date: d})
	require.NoError(t, err)

	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonBlocked, *resp.Reason)
	assert.Equal(t, 0, booking.calls)
}

func TestIsOccupied_WholeDay(t *testing.T) {
	booking := &fakeBookingRepo{records: []domain.BookingRecord{
		{ID: "1", ScheduledAt: "2025-05-14T10:00:00-03:00"},
	}}
	uc, _ := newUseCase(t, &fakeBlockedRepo{}, booking, domain.StoreErrorEmptyResult)

	// Запись на 10:00 занимает весь день, в том числе слот 14:00
	occupied, err := uc.IsOccupied(context.Background(), date("2025-05-14"))
	require.NoError(t, err)
	assert.True(t, occupied)

	resp, err := uc.Execute(context.Background(), &Request{Date: date("2025-05-14")})
	require.NoError(t, err)
	assert.False(t, resp.Admissible)
}

func TestIsOccupied_UsesCanonicalTimezone(t *testing.T) {
	// 01:00 UTC 15 мая = 22:00 14 мая в Сан-Паулу
	booking := &fakeBookingRepo{records: []domain.BookingRecord{
		{ID: "1", ScheduledAt: "2025-05-15T01:00:00Z"},
	}}
	uc, _ := newUseCase(t, &fakeBlockedRepo{}, booking, domain.StoreErrorEmptyResult)

	occupied, err := uc.IsOccupied(context.Background(), date("2025-05-14"))
	require.NoError(t, err)
	assert.True(t, occupied)

	occupied, err = uc.IsOccupied(context.Background(), date("2025-05-15"))
	require.NoError(t, err)
	assert.False(t, occupied)
}

func TestIsOccupied_SkipsUnparseable(t *testing.T) {
	booking := &fakeBookingRepo{records: []domain.BookingRecord{{ID: "x", ScheduledAt: "amanhã"}}}
	uc, m := newUseCase(t, &fakeBlockedRepo{}, booking, domain.StoreErrorEmptyResult)

	occupied, err := uc.IsOccupied(context.Background(), date("2025-05-14"))
	require.NoError(t, err)
	assert.False(t, occupied)
	assert.Equal(t, 1, m.skipped)
}

func TestExecute_StoreErrorEmptyResultFailsOpen(t *testing.T) {
	blocked := &fakeBlockedRepo{err: errors.New("timeout")}
	booking := &fakeBookingRepo{err: errors.New("timeout")}
	uc, m := newUseCase(t, blocked, booking, domain.StoreErrorEmptyResult)

	resp, err := uc.Execute(context.Background(), &Request{Date: date("2025-05-14")})
	require.NoError(t, err)
	assert.True(t, resp.Admissible)
	assert.Equal(t, 2, m.storeErrors)
}

func TestExecute_StoreErrorPropagate(t *testing.T) {
	booking := &fakeBookingRepo{err: errors.New("file locked")}
	uc, _ := newUseCase(t, &fakeBlockedRepo{}, booking, domain.StoreErrorPropagate)

	resp, err := uc.Execute(context.Background(), &Request{Date: date("2025-05-14")})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	blocked := &fakeBlockedRepo{err: errors.New("connection reset")}
	uc, _ = newUseCase(t, blocked, &fakeBookingRepo{}, domain.StoreErrorPropagate)

	_, err = uc.IsBlocked(context.Background(), date("2025-05-14"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_RequiresDate(t *testing.T) {
	uc, _ := newUseCase(t, &fakeBlockedRepo{}, &fakeBookingRepo{}, domain.StoreErrorEmptyResult)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
