package storage

import (
	"context"

	"github.com/shootout-game/shootout-go/internal/model"
)

// Storage defines the interface for the player and game registries
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	// FindPlayerByChannel is the reverse lookup used on disconnect. Both
	// backends scan; the player population is one record per live
	// connection, so an index is not worth its bookkeeping here.
	FindPlayerByChannel(ctx context.Context, channel model.ChannelID) (*model.Player, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]*model.Game, error)
}
