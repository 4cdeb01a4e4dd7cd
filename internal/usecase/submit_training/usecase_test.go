package submit_training

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/internal/integrations/mailer"
	checkAdmission "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/ptr"
)

type fakeAdmission struct {
	reason *string
	err    error
	calls  int
}

func (f *fakeAdmission) Execute(_ context.Context, req *checkAdmission.Request) (*checkAdmission.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &checkAdmission.Response{Date: req.Date, Admissible: f.reason == nil, Reason: f.reason}, nil
}

type fakeTrainingRepo struct {
	created    []*domain.Training
	options    []domain.OptionSelection
	createErr  error
	optionsErr error
}

func (f *fakeTrainingRepo) Create(_ context.Context, t *domain.Training) (*domain.Training, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t.ID = 42
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTrainingRepo) CreateOptions(_ context.Context, _ int64, options []domain.OptionSelection) error {
	if f.optionsErr != nil {
		return f.optionsErr
	}
	f.options = options
	return nil
}

type fakeMirror struct {
	records []domain.BookingRecord
	err     error
}

func (f *fakeMirror) Append(_ context.Context, record domain.BookingRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

type fakeInviter struct {
	sent  int
	err   error
	calls int
}

func (f *fakeInviter) SendInvite(context.Context, *domain.Training) (int, error) {
	f.calls++
	return f.sent, f.err
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	created int
	sent    int
	failed  int
}

func (m *fakeMetrics) IncTrainingCreated() { m.created++ }
func (m *fakeMetrics) AddInvites(sent, failed int) {
	m.sent += sent
	m.failed += failed
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type deps struct {
	admission *fakeAdmission
	trainings *fakeTrainingRepo
	mirror    *fakeMirror
	inviter   *fakeInviter
	tx        *fakeTxManager
	metrics   *fakeMetrics
}

// 2025-06-02 понедельник, 09:00 в São Paulo
func newUseCase(t *testing.T) (*UseCase, *deps) {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)

	d := &deps{
		admission: &fakeAdmission{},
		trainings: &fakeTrainingRepo{},
		mirror:    &fakeMirror{},
		inviter:   &fakeInviter{sent: 2},
		tx:        &fakeTxManager{},
		metrics:   &fakeMetrics{},
	}

	uc := NewUseCase(d.admission, d.trainings, d.mirror, d.inviter, d.tx,
		Settings{Schedule: domain.DefaultSchedule(loc)}, d.metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 2, 9, 0, 0, 0, loc)}

	return uc, d
}

func validRequest() *Request {
	return &Request{
		Company:      "Acme Peças",
		TrainingType: "complete",
		Participants: []ParticipantInput{
			{Name: "Ana", Email: "ana@acme.com"},
			{Name: "Bruno", Email: "bruno@acme.com"},
		},
		Phones:           []string{"(11) 98765-4321"},
		RecordingConsent: "yes",
		TermsAccepted:    true,
		Options: []OptionInput{
			{Key: "product_admin", Level: "complete"},
			{Key: "price_admin", Level: "not_needed"},
		},
		Date: "2025-06-04",
		Time: "14:00",
	}
}

func TestExecute_Success(t *testing.T) {
	uc, d := newUseCase(t)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-06-04", resp.Date.String())
	assert.Equal(t, "14:00", resp.Time.String())
	assert.Equal(t, 2, resp.InvitesSent)
	assert.True(t, resp.ScheduledAt.Equal(time.Date(2025, 6, 4, 17, 0, 0, 0, time.UTC)))

	require.Len(t, d.trainings.created, 1)
	training := d.trainings.created[0]
	assert.Equal(t, "Acme Peças", training.Company)
	assert.True(t, training.RecordingConsent)
	assert.Equal(t, domain.StatusScheduled, training.Status)
	assert.Equal(t, []domain.OptionSelection{
		{Key: domain.OptionProductAdmin, Level: domain.LevelComplete},
		{Key: domain.OptionPriceAdmin, Level: domain.LevelNotNeeded},
	}, d.trainings.options)

	assert.Equal(t, 1, d.tx.calls)
	require.Len(t, d.mirror.records, 1)
	assert.Equal(t, "42", d.mirror.records[0].ID)
	assert.Equal(t, 1, d.metrics.created)
	assert.Equal(t, 2, d.metrics.sent)
	assert.Zero(t, d.metrics.failed)
}

func TestExecute_MirrorRecordIsReadableAsSameDay(t *testing.T) {
	uc, d := newUseCase(t)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, d.mirror.records, 1)

	day, err := domain.ExtractScheduledDay(d.mirror.records[0].ScheduledAt, uc.settings.Schedule.Loc())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", day.String())
}

func TestExecute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr error
	}{
		{name: "blocked date", reason: domain.ReasonBlocked, wantErr: ErrDateBlocked},
		{name: "occupied date", reason: domain.ReasonOccupied, wantErr: ErrDateOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(t)
			d.admission.reason = ptr.Ptr(tt.reason)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, d.trainings.created)
			assert.Empty(t, d.mirror.records)
			assert.Zero(t, d.inviter.calls)
		})
	}
}

func TestExecute_AdmissionStoreUnavailable(t *testing.T) {
	uc, d := newUseCase(t)
	d.admission.err = fmt.Errorf("%w: timeout", checkAdmission.ErrStoreUnavailable)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, d.trainings.created)
}

func TestExecute_AdmissionInternalError(t *testing.T) {
	uc, d := newUseCase(t)
	d.admission.err = errors.New("boom")

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DateRules(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{name: "yesterday", date: "2025-06-01", time: "10:00", wantErr: ErrDateInPast},
		{name: "tuesday", date: "2025-06-03", time: "10:00", wantErr: ErrWeekdayNotAvailable},
		{name: "beyond horizon", date: "2025-07-04", time: "10:00", wantErr: ErrDateTooFarInFuture},
		{name: "unknown slot", date: "2025-06-04", time: "11:00", wantErr: ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(t)
			req := validRequest()
			req.Date = tt.date
			req.Time = tt.time

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, d.admission.calls)
		})
	}
}

func TestExecute_HorizonBoundary(t *testing.T) {
	uc, _ := newUseCase(t)
	req := validRequest()
	req.Date = "2025-07-02" // ровно 30 дней, среда

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_Today(t *testing.T) {
	uc, _ := newUseCase(t)
	req := validRequest()
	req.Date = "2025-06-02"
	req.Time = "10:00"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	loc := uc.settings.Schedule.Loc()
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 2, 11, 0, 0, 0, loc)}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "empty company", mutate: func(r *Request) { r.Company = "   " }},
		{name: "unknown training type", mutate: func(r *Request) { r.TrainingType = "partial" }},
		{name: "no participants", mutate: func(r *Request) { r.Participants = nil }},
		{name: "bad email", mutate: func(r *Request) { r.Participants[0].Email = "not-an-email" }},
		{name: "short phone", mutate: func(r *Request) { r.Phones = []string{"1234"} }},
		{name: "terms not accepted", mutate: func(r *Request) { r.TermsAccepted = false }},
		{name: "bad consent", mutate: func(r *Request) { r.RecordingConsent = "maybe" }},
		{name: "no options", mutate: func(r *Request) { r.Options = nil }},
		{name: "unknown option", mutate: func(r *Request) { r.Options[0].Key = "rocket_science" }},
		{name: "duplicate option", mutate: func(r *Request) { r.Options[1].Key = r.Options[0].Key }},
		{name: "brief not allowed", mutate: func(r *Request) { r.Options[1].Level = "brief" }},
		{name: "bad date", mutate: func(r *Request) { r.Date = "04/06/2025" }},
		{name: "bad time", mutate: func(r *Request) { r.Time = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(t)
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, d.admission.calls)
		})
	}
}

func TestExecute_NilRequest(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SaveFailed(t *testing.T) {
	uc, d := newUseCase(t)
	d.trainings.optionsErr = errors.New("constraint violation")

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, d.mirror.records)
	assert.Zero(t, d.inviter.calls)
	assert.Zero(t, d.metrics.created)
}

func TestExecute_MirrorFailureIsNotFatal(t *testing.T) {
	uc, d := newUseCase(t)
	d.mirror.err = errors.New("disk full")

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 1, d.inviter.calls)
}

func TestExecute_Invites(t *testing.T) {
	t.Run("mailer disabled", func(t *testing.T) {
		uc, d := newUseCase(t)
		d.inviter.sent = 0
		d.inviter.err = mailer.ErrDisabled

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Zero(t, resp.InvitesSent)
		assert.Zero(t, d.metrics.sent)
		assert.Zero(t, d.metrics.failed)
	})

	t.Run("send failed", func(t *testing.T) {
		uc, d := newUseCase(t)
		d.inviter.sent = 0
		d.inviter.err = mailer.ErrSendFailed

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Zero(t, resp.InvitesSent)
		assert.Equal(t, 2, d.metrics.failed)
	})

	t.Run("partial", func(t *testing.T) {
		uc, d := newUseCase(t)
		d.inviter.sent = 1

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.InvitesSent)
		assert.Equal(t, 1, d.metrics.sent)
		assert.Equal(t, 1, d.metrics.failed)
	})

	t.Run("no e-mails", func(t *testing.T) {
		uc, d := newUseCase(t)
		req := validRequest()
		req.Participants = []ParticipantInput{{Name: "Ana"}, {Name: "Bruno"}}

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Zero(t, resp.InvitesSent)
		assert.Zero(t, d.inviter.calls)
	})
}
