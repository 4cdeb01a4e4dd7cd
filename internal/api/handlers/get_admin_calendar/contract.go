package get_admin_calendar

import (
	"context"

	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
)

type BlockedDatesService interface {
	Calendar(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
