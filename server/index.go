package server

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/nathoo/trailhead/logger"
)

//go:embed static/index.html
var indexHTML []byte

// IndexHandler serves the bundled index page at "/" and 404s every other
// path that falls through the mux.
type IndexHandler struct {
	logger *slog.Logger
}

func NewIndexHandler(logger *slog.Logger) *IndexHandler {
	return &IndexHandler{logger: logger}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.logger)

	if r.URL.Path != "/" {
		writeError(w, log, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexHTML); err != nil {
		logger.WithError(log, err).Error("Failed to write index page")
	}
}
