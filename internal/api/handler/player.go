package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shootout-game/shootout-go/internal/api/apierr"
	"github.com/shootout-game/shootout-go/internal/api/response"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/services/player"
)

// PlayerHandler serves the player endpoints. Players created here have no
// channel bound; real-time play registers over the websocket instead.
type PlayerHandler struct {
	players *player.Registry
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Registry) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// CreatePlayerRequest is the body for POST /api/v1/players
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Player name is required"))
		return
	}

	p, err := h.players.Register(r.Context(), "", req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
