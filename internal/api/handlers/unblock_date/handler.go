package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "дата не заблокирована"
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

// Handle DELETE /api/v1/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.service.Unblock(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Invalid date=%q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, blockeddates.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Date not blocked: date=%s", date)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed to unblock date=%s: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked: date=%s", date)
	handlers.RespondNoContent(w)
}
