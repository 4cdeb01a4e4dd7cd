package check_admission

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Settings параметры проверки
type Settings struct {
	Location     *time.Location
	Policy       domain.StoreErrorPolicy
	StoreTimeout time.Duration
}

// Request запрос проверки даты
type Request struct {
	Date types.Date
}

// Response результат проверки. Reason заполнен только при отказе
type Response struct {
	Date       types.Date
	Admissible bool
	Reason     *string // domain.ReasonBlocked | domain.ReasonOccupied
}
