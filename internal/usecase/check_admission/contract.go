package check_admission

import (
	"context"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// BlockedDateRepository интерфейс хранилища заблокированных дат
type BlockedDateRepository interface {
	Exists(ctx context.Context, date types.Date) (bool, error)
}

// BookingRecordRepository интерфейс хранилища записей
type BookingRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.BookingRecord, error)
}

// Metrics метрики проверки
type Metrics interface {
	IncAdmissionRejected(reason string)
	IncSkippedRecord()
	IncStoreError(store, policy string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
