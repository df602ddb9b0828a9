package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nathoo/trailhead/logger"
	"github.com/nathoo/trailhead/store"
)

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

type HealthHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewHealthHandler(s store.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  s,
		logger: logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.logger)

	if r.Method != http.MethodGet {
		writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{}
	status := "healthy"

	if err := h.store.Ping(ctx); err != nil {
		logger.WithError(log, err).Warn("Store health check failed")
		components["store"] = "unhealthy"
		status = "degraded"
	} else {
		components["store"] = "healthy"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, log, code, HealthResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Service:    "trailhead-state",
		Components: components,
	})
}
