package submit_training

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/internal/integrations/mailer"
	checkAdmission "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
)

// UseCase use case записи компании на тренинг
type UseCase struct {
	admission    AdmissionChecker
	trainingRepo TrainingRepository
	mirrorRepo   MirrorRepository
	inviter      InviteSender
	txManager    TransactionManager
	settings     Settings
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	admission AdmissionChecker,
	trainingRepo TrainingRepository,
	mirrorRepo MirrorRepository,
	inviter InviteSender,
	txManager TransactionManager,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		admission:    admission,
		trainingRepo: trainingRepo,
		mirrorRepo:   mirrorRepo,
		inviter:      inviter,
		txManager:    txManager,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет запись на тренинг.
//
// Проверка даты перед записью не защищает от одновременной записи двух
// компаний на один день: между проверкой и сохранением нет блокировки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	schedule := uc.settings.Schedule

	// 1. Валидация формы
	sub, err := parseRequest(req, schedule.Loc())
	if err != nil {
		uc.logger.Warn("SubmitTraining: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitTraining: company=%q, date=%s, time=%s, participants=%d",
		sub.training.Company, sub.date, sub.slot, len(sub.training.Participants))

	// 2. Проверка даты по расписанию
	if err := validateDateRules(schedule, sub.date, sub.slot, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("SubmitTraining: date validation failed: %v", err)
		return nil, err
	}

	// 3. Дата не заблокирована и не занята
	admission, err := uc.admission.Execute(ctx, &checkAdmission.Request{Date: sub.date})
	if err != nil {
		if errors.Is(err, checkAdmission.ErrStoreUnavailable) {
			uc.logger.Error("SubmitTraining: admission check unavailable for date=%s: %v", sub.date, err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Error("SubmitTraining: admission check failed for date=%s: %v", sub.date, err)
		return nil, fmt.Errorf("%w: admission check: %v", ErrInternal, err)
	}
	if !admission.Admissible {
		return nil, uc.rejection(sub, admission)
	}

	// 4. Запись и разделы сохраняются в одной транзакции
	training := sub.training
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.trainingRepo.Create(txCtx, training); err != nil {
			return fmt.Errorf("create training: %w", err)
		}
		if err := uc.trainingRepo.CreateOptions(txCtx, training.ID, training.Options); err != nil {
			return fmt.Errorf("create options: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitTraining: failed to save training for date=%s: %v", sub.date, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	uc.metrics.IncTrainingCreated()
	uc.logger.Info("SubmitTraining: training id=%d saved for %s", training.ID, domain.FormatScheduledAt(training.ScheduledAt))

	// 5. Локальная копия. Ошибка не отменяет запись
	record := domain.BookingRecord{
		ID:          strconv.FormatInt(training.ID, 10),
		ScheduledAt: domain.FormatScheduledAt(training.ScheduledAt),
	}
	if err := uc.mirrorRepo.Append(ctx, record); err != nil {
		uc.logger.Error("SubmitTraining: failed to append training id=%d to mirror: %v", training.ID, err)
	}

	// 6. Приглашения. Ошибка не отменяет запись
	sent := uc.sendInvites(ctx, training)

	return &Response{
		ID:          training.ID,
		Date:        sub.date,
		Time:        sub.slot,
		ScheduledAt: training.ScheduledAt,
		InvitesSent: sent,
	}, nil
}

func (uc *UseCase) rejection(sub *submission, admission *checkAdmission.Response) error {
	reason := ""
	if admission.Reason != nil {
		reason = *admission.Reason
	}
	uc.logger.Warn("SubmitTraining: date=%s rejected, reason=%s", sub.date, reason)

	if reason == domain.ReasonBlocked {
		return ErrDateBlocked
	}
	return ErrDateOccupied
}

func (uc *UseCase) sendInvites(ctx context.Context, training *domain.Training) int {
	recipients := len(training.Emails())
	if recipients == 0 {
		uc.logger.Warn("SubmitTraining: training id=%d has no e-mails, invite skipped", training.ID)
		return 0
	}

	sent, err := uc.inviter.SendInvite(ctx, training)
	if errors.Is(err, mailer.ErrDisabled) {
		uc.logger.Info("SubmitTraining: mailer disabled, invite for training id=%d skipped", training.ID)
		return 0
	}
	uc.metrics.AddInvites(sent, recipients-sent)
	if err != nil {
		uc.logger.Error("SubmitTraining: failed to send invites for training id=%d: %v", training.ID, err)
		return sent
	}

	uc.logger.Info("SubmitTraining: invites sent for training id=%d: %d of %d", training.ID, sent, recipients)
	return sent
}
