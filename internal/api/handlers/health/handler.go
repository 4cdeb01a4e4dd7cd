package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
)

const (
	statusOK   = "ok"
	statusFail = "unavailable"
)

// ReadinessResponse состояние зависимостей
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks  map[string]Pinger
	timeout time.Duration
	logger  Logger
}

func NewHandler(checks map[string]Pinger, timeout time.Duration, logger Logger) *Handler {
	return &Handler{
		checks:  checks,
		timeout: timeout,
		logger:  logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

// Ready GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{Status: statusOK, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name].PingContext(ctx); err != nil {
			h.logger.Warn("GET /readyz - %s unavailable: %v", name, err)
			resp.Checks[name] = statusFail
			resp.Status = statusFail
			continue
		}
		resp.Checks[name] = statusOK
	}

	status := http.StatusOK
	if resp.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
