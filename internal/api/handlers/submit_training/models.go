package submit_training

import (
	"time"

	submitTraining "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/submit_training"
)

// SubmitTrainingRequest HTTP request model
type SubmitTrainingRequest struct {
	Company          string               `json:"company"`
	TrainingType     string               `json:"trainingType"` // "complete" | "custom"
	Participants     []ParticipantRequest `json:"participants"`
	Phones           []string             `json:"phones"`
	RecordingConsent string               `json:"recordingConsent"` // "yes" | "no"
	TermsAccepted    bool                 `json:"termsAccepted"`
	Options          []OptionRequest      `json:"options"`
	Date             string               `json:"date"` // "2025-05-14"
	Time             string               `json:"time"` // "10:00"
}

// ParticipantRequest участник тренинга
type ParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OptionRequest выбранный раздел
type OptionRequest struct {
	Key   string `json:"key"`
	Level string `json:"level"` // "not_needed" | "brief" | "complete"
}

// TrainingResponse HTTP response model
type TrainingResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ScheduledAt string `json:"scheduledAt"`
	InvitesSent int    `json:"invitesSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitTrainingRequest) ToUseCaseRequest() *submitTraining.Request {
	participants := make([]submitTraining.ParticipantInput, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, submitTraining.ParticipantInput{Name: p.Name, Email: p.Email})
	}

	options := make([]submitTraining.OptionInput, 0, len(r.Options))
	for _, o := range r.Options {
		options = append(options, submitTraining.OptionInput{Key: o.Key, Level: o.Level})
	}

	return &submitTraining.Request{
		Company:          r.Company,
		TrainingType:     r.TrainingType,
		Participants:     participants,
		Phones:           r.Phones,
		RecordingConsent: r.RecordingConsent,
		TermsAccepted:    r.TermsAccepted,
		Options:          options,
		Date:             r.Date,
		Time:             r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitTraining.Response) *TrainingResponse {
	return &TrainingResponse{
		ID:          resp.ID,
		Date:        resp.Date.String(),
		Time:        resp.Time.String(),
		ScheduledAt: resp.ScheduledAt.Format(time.RFC3339),
		InvitesSent: resp.InvitesSent,
	}
}
