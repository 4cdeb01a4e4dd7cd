package blockeddates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	List(ctx context.Context) ([]*domain.BlockedDate, error)
	ListBetween(ctx context.Context, from, to types.Date) ([]*domain.BlockedDate, error)
	Upsert(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, bool, error)
	Delete(ctx context.Context, date types.Date) error
}

// BookingRecordRepository источник записей для отметки занятых дней
type BookingRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.BookingRecord, error)
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
