package get_training

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings"
)

const (
	msgInvalidTrainingID = "некорректный ID записи"
	msgNotFound          = "запись на тренинг не найдена"
)

type Handler struct {
	service TrainingsService
	logger  Logger
}

func NewHandler(service TrainingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/trainings/{trainingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainingID, err := strconv.ParseInt(mux.Vars(r)["trainingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/trainings/{id} - Invalid training ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainingID)
		return
	}

	training, err := h.service.GetByID(r.Context(), trainingID)
	if err != nil {
		switch {
		case errors.Is(err, trainings.ErrInvalidInput):
			h.logger.Warn("GET /admin/trainings/{id} - Invalid training ID: %d", trainingID)
			handlers.RespondBadRequest(w, msgInvalidTrainingID)

		case errors.Is(err, trainings.ErrTrainingNotFound):
			h.logger.Warn("GET /admin/trainings/{id} - Training not found: training_id=%d", trainingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/trainings/{id} - Failed to get training: training_id=%d, error=%v", trainingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/trainings/{id} - Training retrieved successfully: training_id=%d", trainingID)
	handlers.RespondJSON(w, http.StatusOK, training)
}
