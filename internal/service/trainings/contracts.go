package trainings

import (
	"context"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// TrainingRepository интерфейс репозитория записей на тренинг
type TrainingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Training, error)
	List(ctx context.Context, filter domain.TrainingsFilter) ([]*domain.Training, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
