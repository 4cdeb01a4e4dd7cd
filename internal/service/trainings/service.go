package trainings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	trainingRepo "github.com/m04kA/SMC-TrainingScheduler/internal/infra/storage/training"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings/models"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Service сервис чтения записей на тренинг для администратора
type Service struct {
	trainingRepo TrainingRepository
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(trainingRepo TrainingRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		trainingRepo: trainingRepo,
		loc:          loc,
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TrainingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	training, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, trainingRepo.ErrTrainingNotFound) {
			s.logger.Warn("GetByID: training id=%d not found", id)
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("GetByID: repository error for training id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTraining(training, s.loc), nil
}

// List возвращает записи, отсортированные по времени тренинга.
// Границы периода задаются календарными днями в часовом поясе расписания
func (s *Service) List(ctx context.Context, req *models.ListTrainingsRequest) (*models.TrainingListResponse, error) {
	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.trainingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d trainings", len(list))
	return models.FromDomainTrainingList(list, s.loc), nil
}

func (s *Service) toDomainFilter(req *models.ListTrainingsRequest) (domain.TrainingsFilter, error) {
	var filter domain.TrainingsFilter
	if req == nil {
		return filter, nil
	}

	var from, to types.Date
	if req.From != nil {
		d, err := types.ParseDate(*req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
		}
		from = d
		start := d.Start(s.loc)
		filter.From = &start
	}
	if req.To != nil {
		d, err := types.ParseDate(*req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
		}
		to = d
		end := d.AddDays(1).Start(s.loc)
		filter.To = &end
	}

	if req.From != nil && req.To != nil && to.Before(from) {
		return filter, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	return filter, nil
}
