package get_available_dates

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

const (
	storeBlockedDates   = "blocked_dates"
	storeBookingRecords = "booking_records"
)

// UseCase use case расчета доступных для записи дат
type UseCase struct {
	blockedRepo  BlockedDateRepository
	bookingRepo  BookingRecordRepository
	settings     Settings
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
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
		blockedRepo:  blockedRepo,
		bookingRepo:  bookingRepo,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных дат.
// При ошибке чтения хранилища поведение определяется политикой:
// empty_result возвращает пустой список, propagate возвращает ErrStoreUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	schedule := uc.settings.Schedule

	// 2. Сегодняшний день в часовом поясе расписания
	today := schedule.Today(uc.timeProvider.Now())
	uc.logger.Info("GetAvailableDates: today=%s, horizon=%d", today, req.HorizonDays)

	response := &Response{
		Today:       today,
		HorizonDays: req.HorizonDays,
		Offers:      []domain.Offer{},
	}

	readCtx := ctx
	if uc.settings.StoreTimeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, uc.settings.StoreTimeout)
		defer cancel()
	}

	// 3. Заблокированные даты
	blocked, err := uc.blockedRepo.List(readCtx)
	if err != nil {
		return uc.onStoreError(response, storeBlockedDates, err)
	}

	// 4. Существующие записи
	records, err := uc.bookingRepo.ListAll(readCtx)
	if err != nil {
		return uc.onStoreError(response, storeBookingRecords, err)
	}

	// 5. Занятые дни (записи с нераспознанным временем пропускаются)
	occupied := domain.OccupiedDays(records, schedule.Loc(), func(rec domain.BookingRecord, err error) {
		uc.logger.Warn("GetAvailableDates: skip record id=%s with scheduled_at=%q: %v", rec.ID, rec.ScheduledAt, err)
		uc.metrics.IncSkippedRecord()
	})

	// 6. Перебор дней горизонта
	response.Offers = computeOffers(schedule, today, req.HorizonDays, domain.BlockedSet(blocked), occupied)
	uc.metrics.ObserveOffers(len(response.Offers))

	uc.logger.Info("GetAvailableDates: blocked=%d, records=%d, occupied_days=%d, offers=%d",
		len(blocked), len(records), len(occupied), len(response.Offers))

	return response, nil
}

func (uc *UseCase) onStoreError(response *Response, store string, err error) (*Response, error) {
	policy := uc.settings.Policy
	if policy == "" {
		policy = domain.StoreErrorEmptyResult
	}
	uc.metrics.IncStoreError(store, string(policy))

	if policy == domain.StoreErrorPropagate {
		uc.logger.Error("GetAvailableDates: failed to read %s: %v", store, err)
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrStoreUnavailable, store, err)
	}

	uc.logger.Error("GetAvailableDates: failed to read %s, returning empty result: %v", store, err)
	uc.metrics.ObserveOffers(0)
	return response, nil
}
