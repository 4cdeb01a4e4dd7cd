package submit_training

import (
	"context"

	submitTraining "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/submit_training"
)

type SubmitTrainingUseCase interface {
	Execute(ctx context.Context, req *submitTraining.Request) (*submitTraining.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
