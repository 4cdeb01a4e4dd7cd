package submit_training

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// Settings параметры записи
type Settings struct {
	Schedule domain.Schedule
}

// Request данные формы записи на тренинг
type Request struct {
	Company          string             `validate:"required,max=200"`
	TrainingType     string             `validate:"required,oneof=complete custom"`
	Participants     []ParticipantInput `validate:"required,min=1,max=50,dive"`
	Phones           []string           `validate:"max=10,dive,phone"`
	RecordingConsent string             `validate:"required,oneof=yes no"`
	TermsAccepted    bool               `validate:"eq=true"`
	Options          []OptionInput      `validate:"required,min=1,max=9,dive"`
	Date             string             `validate:"required,datetime=2006-01-02"`
	Time             string             `validate:"required,datetime=15:04"`
}

// ParticipantInput участник из формы
type ParticipantInput struct {
	Name  string `validate:"required,max=200"`
	Email string `validate:"omitempty,email"`
}

// OptionInput выбранный раздел тренинга
type OptionInput struct {
	Key   string `validate:"required"`
	Level string `validate:"required,oneof=not_needed brief complete"`
}

// Response результат записи
type Response struct {
	ID          int64
	Date        types.Date
	Time        types.TimeString
	ScheduledAt time.Time
	InvitesSent int
}

// submission проверенные и разобранные данные формы
type submission struct {
	date     types.Date
	slot     types.TimeString
	training *domain.Training
}
