package submit_training

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	submitTraining "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/submit_training"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "форма заполнена некорректно"
	msgDateInPast         = "выбранные дата и время уже прошли"
	msgWeekdayUnavailable = "в этот день недели тренинги не проводятся"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректное время, выберите один из доступных слотов"
	msgDateBlocked        = "эта дата недоступна для записи, пожалуйста, выберите другую дату"
	msgDateOccupied       = "на эту дату уже есть запись, пожалуйста, выберите другую дату"
	msgStoreUnavailable   = "не удалось проверить дату, попробуйте позже"
)

type Handler struct {
	useCase SubmitTrainingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitTrainingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitTrainingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, submitTraining.ErrInvalidInput):
			h.logger.Warn("POST /trainings - Invalid input: company=%q, error=%v", req.Company, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitTraining.ErrDateInPast):
			h.logger.Warn("POST /trainings - Date in past: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, submitTraining.ErrWeekdayNotAvailable):
			h.logger.Warn("POST /trainings - Weekday not available: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgWeekdayUnavailable)

		case errors.Is(err, submitTraining.ErrDateTooFarInFuture):
			h.logger.Warn("POST /trainings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, submitTraining.ErrInvalidTimeSlot):
			h.logger.Warn("POST /trainings - Invalid time slot: time=%s", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, submitTraining.ErrDateBlocked):
			h.logger.Warn("POST /trainings - Date blocked: date=%s, company=%q", req.Date, req.Company)
			handlers.RespondConflict(w, msgDateBlocked, domain.ReasonBlocked)

		case errors.Is(err, submitTraining.ErrDateOccupied):
			h.logger.Warn("POST /trainings - Date occupied: date=%s, company=%q", req.Date, req.Company)
			handlers.RespondConflict(w, msgDateOccupied, domain.ReasonOccupied)

		case errors.Is(err, submitTraining.ErrStoreUnavailable):
			h.logger.Error("POST /trainings - Store unavailable: date=%s, error=%v", req.Date, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /trainings - Failed to submit training: company=%q, date=%s, error=%v",
				req.Company, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainings - Training created successfully: training_id=%d, date=%s, time=%s, invites=%d",
		result.ID, result.Date, result.Time, result.InvitesSent)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
