package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nathoo/trailhead/logger"
	"github.com/nathoo/trailhead/store"
	"github.com/nathoo/trailhead/types"
)

const maxBodyBytes = 1 << 20

// gameStateRequest mirrors types.GameState with pointers so a missing
// field can be told apart from an empty one.
type gameStateRequest struct {
	PlayerName      *string `json:"player_name"`
	CurrentLocation *string `json:"current_location"`
}

type GameHandler struct {
	store  store.Store
	logger *slog.Logger
}

func NewGameHandler(s store.Store, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		store:  s,
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for the game state
// Routes:
// GET /game  - Read the current state
// POST /game - Replace the state and echo it back
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.logger)

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, log)

	case http.MethodPost:
		h.handleReplace(w, r, log)

	default:
		log.Warn("Method not allowed for game endpoint", "method", r.Method)
		w.Header().Set("Allow", "GET, POST")
		writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
	}
}

func (h *GameHandler) handleGet(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	gs, err := h.store.Get(r.Context())
	if err != nil {
		logger.WithError(log, err).Error("Failed to read game state")
		writeError(w, log, http.StatusInternalServerError, "Failed to read game state")
		return
	}
	writeJSON(w, log, http.StatusOK, gs)
}

func (h *GameHandler) handleReplace(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	var req gameStateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil || req.PlayerName == nil || req.CurrentLocation == nil {
		logger.WithError(log, err).Warn("Invalid game state body")
		writeError(w, log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	gs, err := h.store.Replace(r.Context(), types.GameState{
		PlayerName:      *req.PlayerName,
		CurrentLocation: *req.CurrentLocation,
	})
	if err != nil {
		logger.WithError(log, err).Error("Failed to replace game state")
		writeError(w, log, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	log.Info("Game state replaced", "player_name", gs.PlayerName, "current_location", gs.CurrentLocation)
	writeJSON(w, log, http.StatusOK, gs)
}
