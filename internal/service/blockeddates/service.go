package blockeddates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-TrainingScheduler/internal/infra/storage/blockeddate"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Service сервис администрирования заблокированных дат
type Service struct {
	blockedRepo  BlockedDateRepository
	bookingRepo  BookingRecordRepository
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	blockedRepo BlockedDateRepository,
	bookingRepo BookingRecordRepository,
	schedule domain.Schedule,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo:  blockedRepo,
		bookingRepo:  bookingRepo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List возвращает все заблокированные даты по возрастанию
func (s *Service) List(ctx context.Context) (*models.BlockedDateListResponse, error) {
	list, err := s.blockedRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d blocked dates", len(list))
	return models.FromDomainBlockedDateList(list), nil
}

// Block блокирует дату или обновляет причину блокировки.
// created = true, если дата не была заблокирована раньше
func (s *Service) Block(ctx context.Context, req *models.BlockDateRequest) (*models.BlockedDateResponse, bool, error) {
	if req == nil {
		return nil, false, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if utf8.RuneCountInString(trimmed) > domain.MaxBlockReasonLength {
			return nil, false, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	saved, created, err := s.blockedRepo.Upsert(ctx, &domain.BlockedDate{Date: date, Reason: reason})
	if err != nil {
		s.logger.Error("Block: repository error for date=%s: %v", date, err)
		return nil, false, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: date=%s blocked (created=%t)", date, created)
	return models.FromDomainBlockedDate(saved), created, nil
}

// Unblock снимает блокировку с даты. Для незаблокированной даты возвращает ErrBlockedDateNotFound
func (s *Service) Unblock(ctx context.Context, rawDate string) error {
	date, err := types.ParseDate(rawDate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.blockedRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("Unblock: date=%s is not blocked", date)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("Unblock: repository error for date=%s: %v", date, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: date=%s unblocked", date)
	return nil
}

// Calendar возвращает подходящие по дню недели дни today..today+horizon
// с отметками блокировки и занятости
func (s *Service) Calendar(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error) {
	horizon := s.schedule.AdminHorizonDays
	if req != nil && req.HorizonDays != nil {
		horizon = *req.HorizonDays
	}
	if horizon < 0 || horizon > domain.MaxHorizonDays {
		return nil, fmt.Errorf("%w: horizon must be between 0 and %d days", ErrInvalidInput, domain.MaxHorizonDays)
	}

	today := s.schedule.Today(s.timeProvider.Now())
	last := today.AddDays(horizon)

	blocked, err := s.blockedRepo.ListBetween(ctx, today, last)
	if err != nil {
		s.logger.Error("Calendar: failed to read blocked dates: %v", err)
		return nil, fmt.Errorf("%w: Calendar - blocked dates: %v", ErrInternal, err)
	}

	records, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Calendar: failed to read booking records: %v", err)
		return nil, fmt.Errorf("%w: Calendar - booking records: %v", ErrInternal, err)
	}

	blockedSet := domain.BlockedSet(blocked)
	occupied := domain.OccupiedDays(records, s.schedule.Loc(), func(rec domain.BookingRecord, err error) {
		s.logger.Warn("Calendar: skip record id=%s with scheduled_at=%q: %v", rec.ID, rec.ScheduledAt, err)
	})

	resp := &models.CalendarResponse{
		Today:       today,
		HorizonDays: horizon,
		Days:        make([]models.CalendarDayResponse, 0),
	}

	for i := 0; i <= horizon; i++ {
		day := today.AddDays(i)
		if !s.schedule.IsEligibleWeekday(day) {
			continue
		}

		entry := domain.CalendarDay{Date: day}
		if bd, ok := blockedSet[day]; ok {
			entry.Blocked = true
			entry.Reason = bd.Reason
		}
		_, entry.Occupied = occupied[day]

		resp.Days = append(resp.Days, models.FromDomainCalendarDay(entry))
	}

	s.logger.Info("Calendar: today=%s, horizon=%d, days=%d, blocked=%d", today, horizon, len(resp.Days), len(blocked))
	return resp, nil
}
