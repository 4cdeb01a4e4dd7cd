package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// validateRequest проверяет горизонт расчета
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon must not be negative, got %d", ErrInvalidInput, req.HorizonDays)
	}
	if req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizon must not exceed %d days, got %d", ErrInvalidInput, domain.MaxHorizonDays, req.HorizonDays)
	}
	return nil
}
