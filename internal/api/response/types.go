package response

import (
	"time"

	"github.com/shootout-game/shootout-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// GameSummary is the list-view shape of a game
type GameSummary struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	PlayerCount int       `json:"player_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameSummaryFromModel converts a model.Game to a GameSummary
func GameSummaryFromModel(g *model.Game) GameSummary {
	return GameSummary{
		ID:          string(g.ID),
		Status:      string(g.State),
		PlayerCount: len(g.Players),
		CreatedAt:   g.CreatedAt,
	}
}

// GameDetail is the detail-view shape of a game
type GameDetail struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Players      []model.PlayerInfo `json:"players"`
	CurrentRound int                `json:"current_round"`
	Scores       [2]int             `json:"scores"`
	CreatedAt    time.Time          `json:"created_at"`
}

// GameDetailFromModel converts a model.Game and its resolved membership to a
// GameDetail
func GameDetailFromModel(g *model.Game, members []model.PlayerInfo) GameDetail {
	return GameDetail{
		ID:           string(g.ID),
		Status:       string(g.State),
		Players:      members,
		CurrentRound: g.CurrentRound,
		Scores:       g.Scores,
		CreatedAt:    g.CreatedAt,
	}
}

// GameList wraps the games collection
type GameList struct {
	Games []GameSummary `json:"games"`
}
