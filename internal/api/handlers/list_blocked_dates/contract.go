package list_blocked_dates

import (
	"context"

	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
)

type BlockedDatesService interface {
	List(ctx context.Context) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
