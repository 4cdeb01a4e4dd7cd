package list_trainings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/trainings/models"
)

const msgInvalidPeriod = "некорректный период, ожидаются даты YYYY-MM-DD и from <= to"

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

// Handle GET /api/v1/admin/trainings?from=2025-05-01&to=2025-05-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListTrainingsRequest{}
	if from := query.Get("from"); from != "" {
		req.From = &from
	}
	if to := query.Get("to"); to != "" {
		req.To = &to
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, trainings.ErrInvalidInput):
			h.logger.Warn("GET /admin/trainings - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/trainings - Failed to list trainings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/trainings - Found %d trainings", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
