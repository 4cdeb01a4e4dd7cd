package get_training

import (
	"context"

	"github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings/models"
)

type TrainingsService interface {
	GetByID(ctx context.Context, id int64) (*models.TrainingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
