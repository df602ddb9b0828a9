// Package server exposes the shared GameState over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nathoo/trailhead/store"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewMux wires every route and wraps them in the request logger.
//
//	GET  /        - static index page
//	GET  /game    - current game state
//	POST /game    - replace the game state
//	GET  /health  - store health
func NewMux(s store.Store, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/", NewIndexHandler(logger))
	mux.Handle("/game", NewGameHandler(s, logger))
	mux.Handle("/health", NewHealthHandler(s, logger))

	return RequestLogger(logger, mux)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
