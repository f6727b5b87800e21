package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/shootout-game/shootout-go/internal/dependencies/clock"
	"github.com/shootout-game/shootout-go/internal/dependencies/random"
	"github.com/shootout-game/shootout-go/internal/services/game"
	"github.com/shootout-game/shootout-go/internal/services/player"
	"github.com/shootout-game/shootout-go/internal/services/reaper"
	"github.com/shootout-game/shootout-go/internal/storage"
	"github.com/shootout-game/shootout-go/internal/storage/memory"
	redisstorage "github.com/shootout-game/shootout-go/internal/storage/redis"
	"github.com/shootout-game/shootout-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Players    *player.Registry
	Games      *game.Controller
	Channels   *ws.ChannelRegistry
	Dispatcher *ws.Dispatcher
	Reaper     *reaper.Reaper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional); a no-op logger is used
	// when nil
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis");
	// defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType
	// is "redis")
	RedisConfig *redisstorage.Config
	// GameConfig holds lifecycle engine tunables; zero value selects
	// defaults
	GameConfig game.Config
	// Reaper cadence; zero values select the defaults
	ReaperInterval  time.Duration
	ReaperRetention time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for
// testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	players := player.NewRegistry(store, clk, rnd, logger)
	games := game.NewController(store, players, clk, rnd, cfg.GameConfig, logger)
	channels := ws.NewChannelRegistry()
	dispatcher := ws.NewDispatcher(players, games, channels, logger)
	rpr := reaper.New(games, cfg.ReaperInterval, cfg.ReaperRetention, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Players:    players,
		Games:      games,
		Channels:   channels,
		Dispatcher: dispatcher,
		Reaper:     rpr,
	}
}
