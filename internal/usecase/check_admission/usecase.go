package check_admission

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/ptr"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// UseCase проверка, можно ли записаться на дату: дата не заблокирована и не занята
type UseCase struct {
	blockedRepo BlockedDateRepository
	bookingRepo BookingRecordRepository
	settings    Settings
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blockedRepo BlockedDateRepository,
	bookingRepo BookingRecordRepository,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		blockedRepo: blockedRepo,
		bookingRepo: bookingRepo,
		settings:    settings,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проверяет дату. Если дата одновременно заблокирована и занята, причиной будет blocked
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resp := &Response{Date: req.Date}

	blocked, err := uc.IsBlocked(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if blocked {
		uc.reject(resp, domain.ReasonBlocked)
		return resp, nil
	}

	occupied, err := uc.IsOccupied(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if occupied {
		uc.reject(resp, domain.ReasonOccupied)
		return resp, nil
	}

	resp.Admissible = true
	uc.logger.Info("CheckAdmission: date=%s admissible", req.Date)
	return resp, nil
}

// IsBlocked проверяет, есть ли дата среди заблокированных.
// При ошибке хранилища и политике empty_result возвращает false
func (uc *UseCase) IsBlocked(ctx context.Context, date types.Date) (bool, error) {
	readCtx, cancel := uc.readContext(ctx)
	defer cancel()

	blocked, err := uc.blockedRepo.Exists(readCtx, date)
	if err != nil {
		return false, uc.onStoreError("blocked_dates", date, err)
	}
	return blocked, nil
}

// IsOccupied проверяет, есть ли запись на этот день (в любой слот).
// При ошибке хранилища и политике empty_result возвращает false
func (uc *UseCase) IsOccupied(ctx context.Context, date types.Date) (bool, error) {
	readCtx, cancel := uc.readContext(ctx)
	defer cancel()

	records, err := uc.bookingRepo.ListAll(readCtx)
	if err != nil {
		return false, uc.onStoreError("booking_records", date, err)
	}

	loc := uc.settings.Location
	if loc == nil {
		loc = time.UTC
	}

	occupied := domain.OccupiedDays(records, loc, func(rec domain.BookingRecord, err error) {
		uc.logger.Warn("CheckAdmission: skip record id=%s with scheduled_at=%q: %v", rec.ID, rec.ScheduledAt, err)
		uc.metrics.IncSkippedRecord()
	})

	_, ok := occupied[date]
	return ok, nil
}

func (uc *UseCase) reject(resp *Response, reason string) {
	resp.Admissible = false
	resp.Reason = ptr.Ptr(reason)
	uc.metrics.IncAdmissionRejected(reason)
	uc.logger.Info("CheckAdmission: date=%s rejected, reason=%s", resp.Date, reason)
}

func (uc *UseCase) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.settings.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.settings.StoreTimeout)
}

// onStoreError возвращает nil при политике empty_result (проверка считается пройденной)
func (uc *UseCase) onStoreError(store string, date types.Date, err error) error {
	policy := uc.settings.Policy
	if policy == "" {
		policy = domain.StoreErrorEmptyResult
	}
	uc.metrics.IncStoreError(store, string(policy))

	if policy == domain.StoreErrorPropagate {
		uc.logger.Error("CheckAdmission: failed to read %s for date=%s: %v", store, date, err)
		return fmt.Errorf("%w: failed to read %s: %v", ErrStoreUnavailable, store, err)
	}

	uc.logger.Error("CheckAdmission: failed to read %s for date=%s, treating as free: %v", store, date, err)
	return nil
}
