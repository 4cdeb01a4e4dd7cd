package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// BlockedDateRepository интерфейс хранилища заблокированных дат
type BlockedDateRepository interface {
	List(ctx context.Context) ([]*domain.BlockedDate, error)
}

// BookingRecordRepository интерфейс хранилища записей (локальная копия или основное)
type BookingRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.BookingRecord, error)
}

// Metrics метрики расчета доступности
type Metrics interface {
	ObserveOffers(count int)
	IncSkippedRecord()
	IncStoreError(store, policy string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
