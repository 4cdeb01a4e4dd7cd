package block_date

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates"
	"github.com/m04kA/SMC-TrainingScheduler/internal/service/blockeddates/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректная дата или причина блокировки"
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

// Handle PUT /api/v1/admin/blocked-dates/{date}
// 201 при новой блокировке, 200 при обновлении причины
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	// тело необязательно: пустое тело означает блокировку без причины
	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PUT /admin/blocked-dates/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blocked, created, err := h.service.Block(r.Context(), &models.BlockDateRequest{Date: date, Reason: req.Reason})
	if err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			h.logger.Warn("PUT /admin/blocked-dates/{date} - Invalid input: date=%q, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/blocked-dates/{date} - Failed to block date=%q: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /admin/blocked-dates/{date} - Date blocked: date=%s, created=%t", blocked.Date, created)
	handlers.RespondJSON(w, status, blocked)
}
