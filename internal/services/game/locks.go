package game

import (
	"sync"

	"github.com/shootout-game/shootout-go/internal/model"
)

// gameLocks serializes read-modify-write cycles per game. Operations on
// different games proceed independently; two operations on the same game
// never interleave, which is what guarantees exactly one of two concurrent
// joiners wins the second slot.
type gameLocks struct {
	mu    sync.Mutex
	locks map[model.GameID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[model.GameID]*lockEntry),
	}
}

// lock acquires the per-game mutex and returns its release function. Entries
// are reference-counted so the map does not grow with every game ever seen.
func (l *gameLocks) lock(id model.GameID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
