package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Settings параметры расчета
type Settings struct {
	Schedule     domain.Schedule
	Policy       domain.StoreErrorPolicy
	StoreTimeout time.Duration
}

// Request запрос доступных дат
type Request struct {
	HorizonDays int // горизонт в днях от сегодня, включительно
}

// Response список доступных дат
type Response struct {
	Today       types.Date
	HorizonDays int
	Offers      []domain.Offer
}
