package memory

import (
	"context"
	"sync"

	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Records
// are copied on both save and read so callers never share mutable state with
// the store: the lifecycle engine mutates its game in place under a per-game
// lock while HTTP reads fetch the same game concurrently.
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	games   map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		games:   make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = clonePlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) FindPlayerByChannel(ctx context.Context, channel model.ChannelID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, player := range s.players {
		if player.Channel == channel {
			return clonePlayer(player), nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, cloneGame(game))
	}
	return games, nil
}

// clonePlayer copies a player record; every field is a scalar
func clonePlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}

// cloneGame deep-copies a game record, preserving nil slices and maps so
// round-trips compare equal
func cloneGame(g *model.Game) *model.Game {
	c := *g
	if g.Players != nil {
		c.Players = make([]model.PlayerID, len(g.Players))
		copy(c.Players, g.Players)
	}
	if g.Rounds != nil {
		c.Rounds = make([]model.RoundRecord, len(g.Rounds))
		copy(c.Rounds, g.Rounds)
	}
	if g.Pending != nil {
		c.Pending = make(map[model.PlayerID]model.Move, len(g.Pending))
		for id, move := range g.Pending {
			c.Pending[id] = move
		}
	}
	return &c
}
