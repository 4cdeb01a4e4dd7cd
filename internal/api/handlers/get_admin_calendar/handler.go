package get_admin_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
)

const msgInvalidHorizon = "некорректный горизонт, ожидается неотрицательное число дней"

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

// Handle GET /api/v1/admin/calendar?horizonDays=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.CalendarRequest{}
	if raw := r.URL.Query().Get("horizonDays"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /admin/calendar - Invalid horizonDays=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
		req.HorizonDays = &horizon
	}

	calendar, err := h.service.Calendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			h.logger.Warn("GET /admin/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)

		default:
			h.logger.Error("GET /admin/calendar - Failed to build calendar: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar - %d days (today=%s, horizon=%d)", len(calendar.Days), calendar.Today, calendar.HorizonDays)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
