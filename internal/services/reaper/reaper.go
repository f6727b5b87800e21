package reaper

import (
	"context"
	"log/slog"
	"time"
)

// Default cadence matching the original deployment: check every 15 minutes,
// evict games idle for more than 30.
const (
	DefaultInterval  = 15 * time.Minute
	DefaultRetention = 30 * time.Minute
)

// Sweeper evicts idle games and reports how many were removed
type Sweeper interface {
	Sweep(ctx context.Context, retention time.Duration) (int, error)
}

// Reaper periodically evicts idle games so the in-memory registries cannot
// grow without bound. One timer covers all games; nothing is scheduled
// per-session.
type Reaper struct {
	sweeper   Sweeper
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger
}

// New creates a reaper. Zero interval or retention select the defaults.
func New(sweeper Sweeper, interval, retention time.Duration, logger *slog.Logger) *Reaper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Reaper{
		sweeper:   sweeper,
		interval:  interval,
		retention: retention,
		logger:    logger.With(slog.String("component", "reaper")),
	}
}

// Run sweeps on a fixed cadence until the context is cancelled. A failed
// sweep is logged and the timer continues; a sweep never crashes the
// coordinator.
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("reaper started",
		slog.Duration("interval", r.interval),
		slog.Duration("retention", r.retention),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic during sweep", slog.Any("panic", rec))
		}
	}()

	removed, err := r.sweeper.Sweep(ctx, r.retention)
	if err != nil {
		r.logger.Error("sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		r.logger.Info("swept idle games", slog.Int("removed", removed))
	}
}
