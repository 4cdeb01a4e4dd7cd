package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-TrainingScheduler/internal/usecase/get_available_dates"
)

const (
	msgInvalidHorizon   = "некорректный горизонт, ожидается неотрицательное число дней"
	msgStoreUnavailable = "расписание временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase        GetAvailableDatesUseCase
	defaultHorizon int
	logger         Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, defaultHorizon int, logger Logger) *Handler {
	return &Handler{
		useCase:        useCase,
		defaultHorizon: defaultHorizon,
		logger:         logger,
	}
}

// Handle GET /api/v1/available-dates?horizonDays=30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	horizon := h.defaultHorizon
	if raw := r.URL.Query().Get("horizonDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /available-dates - Invalid horizonDays=%q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
		horizon = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{HorizonDays: horizon})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /available-dates - Invalid input: horizon=%d, error=%v", horizon, err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)

		case errors.Is(err, getAvailableDates.ErrStoreUnavailable):
			h.logger.Error("GET /available-dates - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /available-dates - Failed to get available dates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-dates - Found %d offers (today=%s, horizon=%d)", len(result.Offers), result.Today, horizon)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
