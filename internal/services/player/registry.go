package player

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shootout-game/shootout-go/internal/dependencies/clock"
	"github.com/shootout-game/shootout-go/internal/dependencies/random"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/storage"
)

// idSuffixLength is the length of the random suffix in generated IDs
const idSuffixLength = 5

// Registry is the connection registry: the source of truth for who is online.
// It owns player records; games hold only player IDs.
type Registry struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewRegistry creates a new connection registry
func NewRegistry(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "player-registry")),
	}
}

// NewID generates a fresh player ID of the form player_<unix-ms>_<suffix>
func (r *Registry) NewID() model.PlayerID {
	ts := strconv.FormatInt(r.clock.Now().UnixMilli(), 10)
	return model.PlayerID("player_" + ts + "_" + r.random.String(idSuffixLength, random.IDAlphabet))
}

// Register creates a new player record bound to the given channel. It always
// succeeds and always creates a fresh record: registering twice from the same
// channel yields two distinct players.
func (r *Registry) Register(ctx context.Context, channel model.ChannelID, name string) (*model.Player, error) {
	if name == "" {
		name = model.DefaultPlayerName
	}

	now := r.clock.Now()
	p := &model.Player{
		ID:         r.NewID(),
		Name:       name,
		Presence:   model.PresenceOnline,
		Channel:    channel,
		LastActive: now,
		CreatedAt:  now,
	}

	if err := r.storage.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("saving player: %w", err)
	}

	r.logger.Info("player registered",
		slog.String("player_id", string(p.ID)),
		slog.String("name", p.Name),
	)

	return p, nil
}

// EnsureRegistered returns the player with the given ID, creating a
// placeholder record with a derived display name if none exists. This is the
// lenient fallback the lifecycle engine uses when a game operation names an
// unknown player.
func (r *Registry) EnsureRegistered(ctx context.Context, id model.PlayerID, channel model.ChannelID) (*model.Player, error) {
	p, err := r.storage.GetPlayer(ctx, id)
	if err == nil {
		return p, nil
	}
	if err != model.ErrPlayerNotFound {
		return nil, err
	}

	now := r.clock.Now()
	p = &model.Player{
		ID:         id,
		Name:       placeholderName(id),
		Presence:   model.PresenceOnline,
		Channel:    channel,
		LastActive: now,
		CreatedAt:  now,
	}

	if err := r.storage.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("saving player: %w", err)
	}

	r.logger.Info("player auto-registered",
		slog.String("player_id", string(id)),
	)

	return p, nil
}

// Get retrieves a player by ID
func (r *Registry) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return r.storage.GetPlayer(ctx, id)
}

// LookupByChannel finds the player bound to the given channel, used on
// disconnect
func (r *Registry) LookupByChannel(ctx context.Context, channel model.ChannelID) (*model.Player, error) {
	return r.storage.FindPlayerByChannel(ctx, channel)
}

// Touch refreshes a player's last-activity timestamp. Unknown IDs are
// silently ignored.
func (r *Registry) Touch(ctx context.Context, id model.PlayerID) {
	p, err := r.storage.GetPlayer(ctx, id)
	if err != nil {
		return
	}
	p.LastActive = r.clock.Now()
	if err := r.storage.SavePlayer(ctx, p); err != nil {
		r.logger.Warn("failed to touch player",
			slog.String("player_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

// Assign records the player's current game and refreshes activity. Unknown
// IDs are silently ignored, like Touch.
func (r *Registry) Assign(ctx context.Context, id model.PlayerID, gameID model.GameID) {
	p, err := r.storage.GetPlayer(ctx, id)
	if err != nil {
		return
	}
	p.GameID = gameID
	p.LastActive = r.clock.Now()
	if err := r.storage.SavePlayer(ctx, p); err != nil {
		r.logger.Warn("failed to assign player to game",
			slog.String("player_id", string(id)),
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
	}
}

// Remove deletes a player record. Removing an absent player is not an error.
func (r *Registry) Remove(ctx context.Context, id model.PlayerID) error {
	return r.storage.DeletePlayer(ctx, id)
}

// placeholderName derives a display name for an auto-registered player from
// the leading characters of its ID
func placeholderName(id model.PlayerID) string {
	s := string(id)
	if len(s) > 5 {
		s = s[:5]
	}
	return "Player " + s
}
