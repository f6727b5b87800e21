package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shootout-game/shootout-go/internal/api/apierr"
	"github.com/shootout-game/shootout-go/internal/api/response"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/services/game"
)

// GameHandler serves the passive game reporting endpoints. Both are pure
// reads; games are only ever mutated through the websocket protocol.
type GameHandler struct {
	games *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *game.Controller) *GameHandler {
	return &GameHandler{games: games}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summaries := make([]response.GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, response.GameSummaryFromModel(g))
	}

	response.JSON(w, http.StatusOK, response.GameList{Games: summaries})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.games.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	members, err := h.games.Members(r.Context(), g)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameDetailFromModel(g, members))
}
