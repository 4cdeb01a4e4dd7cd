package submit_training

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	checkAdmission "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
)

// AdmissionChecker проверка даты перед записью
type AdmissionChecker interface {
	Execute(ctx context.Context, req *checkAdmission.Request) (*checkAdmission.Response, error)
}

// TrainingRepository интерфейс основного хранилища записей
type TrainingRepository interface {
	Create(ctx context.Context, t *domain.Training) (*domain.Training, error)
	CreateOptions(ctx context.Context, trainingID int64, options []domain.OptionSelection) error
}

// MirrorRepository интерфейс локальной копии записей
type MirrorRepository interface {
	Append(ctx context.Context, record domain.BookingRecord) error
}

// InviteSender отправка приглашений участникам. Возвращает число успешных отправок
type InviteSender interface {
	SendInvite(ctx context.Context, t *domain.Training) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики записи
type Metrics interface {
	IncTrainingCreated()
	AddInvites(sent, failed int)
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
