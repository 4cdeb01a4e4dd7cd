package check_admission

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	checkAdmission "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/check_admission"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreUnavailable = "не удалось проверить дату, попробуйте позже"
)

type Handler struct {
	useCase CheckAdmissionUseCase
	logger  Logger
}

func NewHandler(useCase CheckAdmissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-dates/{date}/admission
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]

	date, err := types.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("GET /available-dates/{date}/admission - Invalid date=%q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAdmission.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, checkAdmission.ErrInvalidInput):
			h.logger.Warn("GET /available-dates/{date}/admission - Invalid input: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkAdmission.ErrStoreUnavailable):
			h.logger.Error("GET /available-dates/{date}/admission - Store unavailable: date=%s, error=%v", date, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /available-dates/{date}/admission - Failed to check date=%s: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates/{date}/admission - date=%s, admissible=%t", date, result.Admissible)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
