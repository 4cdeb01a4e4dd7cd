package list_blocked_dates

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
)

type Handler struct {
	service BlockedDatesService
	logger  Logger
}

func NewHandler(service BlockedDatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed to list blocked dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/blocked-dates - Found %d blocked dates", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
