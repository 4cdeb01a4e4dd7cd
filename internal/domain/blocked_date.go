package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// BlockedDate день, закрытый администратором для записи.
// На один календарный день не более одной записи.
type BlockedDate struct {
	Date      types.Date
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
