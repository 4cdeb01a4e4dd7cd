package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// ListTrainingsRequest запрос списка записей. Границы в формате YYYY-MM-DD
type ListTrainingsRequest struct {
	From *string `json:"from,omitempty"` // включительно
	To   *string `json:"to,omitempty"`   // включительно
}

// ParticipantResponse участник тренинга
type ParticipantResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// OptionResponse выбранный раздел
type OptionResponse struct {
	Key   string `json:"key"`
	Group int    `json:"group,omitempty"`
	Level string `json:"level"`
}

// TrainingResponse запись на тренинг
type TrainingResponse struct {
	ID               int64                 `json:"id"`
	Company          string                `json:"company"`
	TrainingType     string                `json:"trainingType"`
	Participants     []ParticipantResponse `json:"participants"`
	Phones           []string              `json:"phones"`
	RecordingConsent bool                  `json:"recordingConsent"`
	Options          []OptionResponse      `json:"options"`
	ScheduledAt      time.Time             `json:"scheduledAt"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// TrainingListResponse список записей
type TrainingListResponse struct {
	Trainings []TrainingResponse `json:"trainings"`
	Total     int                `json:"total"`
}

// FromDomainTraining конвертирует domain.Training в ответ.
// Время приводится к часовому поясу расписания
func FromDomainTraining(t *domain.Training, loc *time.Location) *TrainingResponse {
	if t == nil {
		return nil
	}

	participants := make([]ParticipantResponse, 0, len(t.Participants))
	for _, p := range t.Participants {
		participants = append(participants, ParticipantResponse{Name: p.Name, Email: p.Email})
	}

	options := make([]OptionResponse, 0, len(t.Options))
	for _, o := range t.Options {
		opt := OptionResponse{Key: string(o.Key), Level: o.Level.String()}
		if def, ok := domain.LookupOption(o.Key); ok {
			opt.Group = def.Group
		}
		options = append(options, opt)
	}

	phones := t.Phones
	if phones == nil {
		phones = []string{}
	}

	return &TrainingResponse{
		ID:               t.ID,
		Company:          t.Company,
		TrainingType:     string(t.TrainingType),
		Participants:     participants,
		Phones:           phones,
		RecordingConsent: t.RecordingConsent,
		Options:          options,
		ScheduledAt:      t.ScheduledAt.In(loc),
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt.In(loc),
	}
}

// FromDomainTrainingList конвертирует список записей
func FromDomainTrainingList(list []*domain.Training, loc *time.Location) *TrainingListResponse {
	resp := &TrainingListResponse{
		Trainings: make([]TrainingResponse, 0, len(list)),
	}
	for _, t := range list {
		if t == nil {
			continue
		}
		resp.Trainings = append(resp.Trainings, *FromDomainTraining(t, loc))
	}
	resp.Total = len(resp.Trainings)
	return resp
}
