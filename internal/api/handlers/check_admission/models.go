package check_admission

import (
	checkAdmission "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
)

// AdmissionResponse HTTP response model
type AdmissionResponse struct {
	Date       string  `json:"date"`
	Admissible bool    `json:"admissible"`
	Reason     *string `json:"reason,omitempty"` // "blocked" | "occupied"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAdmission.Response) *AdmissionResponse {
	return &AdmissionResponse{
		Date:       resp.Date.String(),
		Admissible: resp.Admissible,
		Reason:     resp.Reason,
	}
}
