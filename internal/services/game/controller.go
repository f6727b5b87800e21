package game

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/shootout-game/shootout-go/internal/dependencies/clock"
	"github.com/shootout-game/shootout-go/internal/dependencies/random"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/services/player"
	"github.com/shootout-game/shootout-go/internal/storage"
)

// idSuffixLength is the length of the random suffix in generated game IDs
const idSuffixLength = 5

// Config holds tunables for the lifecycle engine
type Config struct {
	// MaxRounds is the number of rounds before a game completes. The
	// kicker alternates each round, so 10 rounds is 5 kicks per player.
	MaxRounds int
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{
		MaxRounds: 10,
	}
}

// Controller is the session lifecycle engine. It owns every status
// transition a game can make and the matchmaking of a second player into a
// waiting game.
type Controller struct {
	storage storage.Storage
	players *player.Registry
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	locks *gameLocks
}

// NewController creates a new lifecycle engine
func NewController(
	storage storage.Storage,
	players *player.Registry,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultConfig().MaxRounds
	}
	return &Controller{
		storage: storage,
		players: players,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "game-engine")),
		cfg:     cfg,
		locks:   newGameLocks(),
	}
}

// MoveResult reports the effect of an accepted move
type MoveResult struct {
	Game     *model.Game
	Resolved bool
	Record   *model.RoundRecord
	GameOver bool
	Winner   model.PlayerID
}

// DisconnectResult reports the cleanup performed for a dropped channel.
// Notify lists the remaining members whose channels should receive a
// player_disconnected event.
type DisconnectResult struct {
	PlayerID model.PlayerID
	Game     *model.Game
	Notify   []*model.Player
}

// CreateGame allocates a new waiting game owned by the given player,
// auto-registering the player if the ID is unknown
func (c *Controller) CreateGame(ctx context.Context, playerID model.PlayerID, channel model.ChannelID) (*model.Game, []model.PlayerInfo, error) {
	if playerID == "" {
		return nil, nil, model.ErrMissingPlayerID
	}

	if _, err := c.players.EnsureRegistered(ctx, playerID, channel); err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	g := &model.Game{
		ID:         c.newID(),
		State:      model.GameStateWaiting,
		Players:    []model.PlayerID{playerID},
		Pending:    make(map[model.PlayerID]model.Move),
		CreatedAt:  now,
		LastActive: now,
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, nil, err
	}

	c.players.Assign(ctx, playerID, g.ID)

	c.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.String("player_id", string(playerID)),
	)

	members, err := c.Members(ctx, g)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}

// JoinGame matches a second player into a waiting game and transitions it to
// ready. The append-and-status-check runs under the game's lock, so of two
// concurrent joiners exactly one wins the second slot.
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID, channel model.ChannelID) (*model.Game, []model.PlayerInfo, error) {
	if gameID == "" {
		return nil, nil, model.ErrMissingGameID
	}
	if playerID == "" {
		return nil, nil, model.ErrMissingPlayerID
	}

	unlock := c.locks.lock(gameID)
	defer unlock()

	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	if g.State != model.GameStateWaiting {
		return nil, nil, model.ErrGameNotJoinable
	}
	if g.IsFull() {
		return nil, nil, model.ErrGameFull
	}

	if _, err := c.players.EnsureRegistered(ctx, playerID, channel); err != nil {
		return nil, nil, err
	}

	g.Players = append(g.Players, playerID)
	g.State = model.GameStateReady
	g.LastActive = c.clock.Now()

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, nil, err
	}

	c.players.Assign(ctx, playerID, g.ID)

	c.logger.Info("player joined game",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(g.Players)),
	)

	members, err := c.Members(ctx, g)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}

// SubmitMove records one player's move for the current round. A move is
// accepted only from a current member, only for the current round, only once
// per player per round, and only in the role the round assigns the player.
// When both moves for a round are in, the round resolves.
func (c *Controller) SubmitMove(ctx context.Context, gameID model.GameID, playerID model.PlayerID, round int, cell model.Cell, role model.Role) (*MoveResult, error) {
	if gameID == "" {
		return nil, model.ErrMissingGameID
	}
	if playerID == "" {
		return nil, model.ErrMissingPlayerID
	}

	unlock := c.locks.lock(gameID)
	defer unlock()

	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if g.Terminal() {
		return nil, model.ErrGameFinished
	}
	if g.State == model.GameStateWaiting {
		return nil, model.ErrGameNotStarted
	}
	if !g.HasPlayer(playerID) {
		return nil, model.ErrNotInGame
	}
	if !cell.Valid() {
		return nil, model.ErrInvalidCell
	}
	if round != g.CurrentRound {
		return nil, model.ErrWrongRound
	}
	if _, moved := g.Pending[playerID]; moved {
		return nil, model.ErrAlreadyMoved
	}
	if role != g.RoleFor(round, playerID) {
		return nil, model.ErrWrongRole
	}

	// First accepted move starts the rounds
	if g.State == model.GameStateReady {
		g.State = model.GameStateInProgress
	}

	g.Pending[playerID] = model.Move{Cell: cell, Role: role}
	g.LastActive = c.clock.Now()

	result := &MoveResult{Game: g}

	if len(g.Pending) == model.MaxPlayers {
		kickerID := g.KickerFor(g.CurrentRound)
		keeperID := g.Players[0]
		if keeperID == kickerID {
			keeperID = g.Players[1]
		}

		record := resolveRound(g.CurrentRound, kickerID, keeperID, g.Pending[kickerID], g.Pending[keeperID])
		applyRecord(g, record)

		result.Resolved = true
		result.Record = &record

		if len(g.Rounds) >= c.cfg.MaxRounds {
			g.State = model.GameStateComplete
			result.GameOver = true
			result.Winner = g.Winner()
		}

		c.logger.Info("round resolved",
			slog.String("game_id", string(gameID)),
			slog.Int("round", record.Round),
			slog.String("outcome", string(record.Outcome)),
		)
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}

	c.players.Touch(ctx, playerID)

	return result, nil
}

// Disconnect handles a dropped channel: it resolves the owning player,
// abandons the player's game if it was active, and removes the player. A
// channel with no player is a no-op, so a second disconnect for the same
// channel does nothing. Disconnect never fails the caller on partial
// cleanup; the registries self-heal on the next disconnect or sweep.
func (c *Controller) Disconnect(ctx context.Context, channel model.ChannelID) (*DisconnectResult, error) {
	p, err := c.players.LookupByChannel(ctx, channel)
	if err != nil {
		if err == model.ErrPlayerNotFound {
			return nil, nil
		}
		return nil, err
	}

	result := &DisconnectResult{PlayerID: p.ID}

	if p.GameID != "" {
		unlock := c.locks.lock(p.GameID)

		g, err := c.storage.GetGame(ctx, p.GameID)
		if err == nil {
			for _, memberID := range g.Players {
				if memberID == p.ID {
					continue
				}
				member, err := c.players.Get(ctx, memberID)
				if err != nil {
					continue
				}
				result.Notify = append(result.Notify, member)
			}

			if g.Active() {
				g.State = model.GameStateAbandoned
				g.LastActive = c.clock.Now()
				if err := c.storage.SaveGame(ctx, g); err != nil {
					c.logger.Warn("failed to abandon game on disconnect",
						slog.String("game_id", string(g.ID)),
						slog.String("error", err.Error()),
					)
				} else {
					c.logger.Info("game abandoned",
						slog.String("game_id", string(g.ID)),
						slog.String("player_id", string(p.ID)),
					)
				}
			}
			result.Game = g
		}

		unlock()
	}

	if err := c.players.Remove(ctx, p.ID); err != nil {
		c.logger.Warn("failed to remove player on disconnect",
			slog.String("player_id", string(p.ID)),
			slog.String("error", err.Error()),
		)
	}

	return result, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ListGames returns all games ordered by creation time
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}

// Members resolves the display snapshot of a game's membership. A member
// whose player record is gone is reported with a fallback name rather than
// dropped.
func (c *Controller) Members(ctx context.Context, g *model.Game) ([]model.PlayerInfo, error) {
	members := make([]model.PlayerInfo, 0, len(g.Players))
	for _, id := range g.Players {
		p, err := c.players.Get(ctx, id)
		if err != nil {
			members = append(members, model.PlayerInfo{ID: string(id), Name: "Unknown player"})
			continue
		}
		members = append(members, p.Info())
	}
	return members, nil
}

// Sweep removes every game idle longer than the retention threshold and
// returns the number removed. Each candidate is re-checked under its own
// lock so a game touched mid-sweep is retained.
func (c *Controller) Sweep(ctx context.Context, retention time.Duration) (int, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := c.clock.Now().Add(-retention)
	removed := 0

	for _, candidate := range games {
		if !candidate.LastActive.Before(cutoff) {
			continue
		}

		unlock := c.locks.lock(candidate.ID)

		g, err := c.storage.GetGame(ctx, candidate.ID)
		if err == nil && g.LastActive.Before(cutoff) {
			if err := c.storage.DeleteGame(ctx, g.ID); err == nil {
				removed++
			}
		}

		unlock()
	}

	return removed, nil
}

// newID generates a fresh game ID of the form game_<unix-ms>_<suffix>
func (c *Controller) newID() model.GameID {
	ts := strconv.FormatInt(c.clock.Now().UnixMilli(), 10)
	return model.GameID("game_" + ts + "_" + c.random.String(idSuffixLength, random.IDAlphabet))
}
