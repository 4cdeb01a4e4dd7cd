package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

// TrainingType тип тренинга
type TrainingType string

const (
	TrainingTypeComplete TrainingType = "complete"
	TrainingTypeCustom   TrainingType = "custom"
)

// IsValid проверяет значение типа тренинга
func (t TrainingType) IsValid() bool {
	return t == TrainingTypeComplete || t == TrainingTypeCustom
}

// TrainingStatus статус записи на тренинг
type TrainingStatus string

const (
	StatusScheduled TrainingStatus = "scheduled"
)

// Participant участник тренинга. Email может быть пустым
type Participant struct {
	Name  string
	Email string
}

// Training запись компании на тренинг. Создается один раз и не изменяется
type Training struct {
	ID               int64
	Company          string
	TrainingType     TrainingType
	Participants     []Participant
	Phones           []string
	RecordingConsent bool
	Options          []OptionSelection
	ScheduledAt      time.Time
	Status           TrainingStatus
	CreatedAt        time.Time
}

// Emails непустые адреса участников в порядке следования
func (t *Training) Emails() []string {
	emails := make([]string, 0, len(t.Participants))
	for _, p := range t.Participants {
		if p.Email != "" {
			emails = append(emails, p.Email)
		}
	}
	return emails
}

// Day календарный день тренинга в часовом поясе loc
func (t *Training) Day(loc *time.Location) types.Date {
	return types.NewDate(t.ScheduledAt.In(loc))
}

// BookingRecord узкое представление записи для расчета занятости.
// ScheduledAt хранится текстом в одном из двух форматов (см. ExtractScheduledDay)
type BookingRecord struct {
	ID          string
	ScheduledAt string
}

// TrainingsFilter фильтр списка записей для администратора
type TrainingsFilter struct {
	From *time.Time // включительно
	To   *time.Time // не включительно
}
