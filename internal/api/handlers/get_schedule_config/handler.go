package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

type Handler struct {
	response *ScheduleConfigResponse
	logger   Logger
}

// NewHandler расписание неизменно после старта, ответ собирается один раз
func NewHandler(schedule domain.Schedule, logger Logger) *Handler {
	return &Handler{
		response: FromDomain(schedule, domain.OptionCatalog()),
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /schedule - Schedule config requested")
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
