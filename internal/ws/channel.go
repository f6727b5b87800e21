package ws

import (
	"sync"

	"github.com/shootout-game/shootout-go/internal/model"
)

// Channel is the outbound half of one connected client. Send is
// fire-and-forget: it never blocks the caller and may drop if the client has
// stalled.
type Channel interface {
	ID() model.ChannelID
	Send(event model.EventType, data any)
}

// ChannelRegistry holds the live channel handles by ID. Player records store
// only the ChannelID; the handle itself lives here, at the transport edge.
type ChannelRegistry struct {
	mu       sync.RWMutex
	channels map[model.ChannelID]Channel
}

// NewChannelRegistry creates an empty channel registry
func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{
		channels: make(map[model.ChannelID]Channel),
	}
}

// Add registers a live channel
func (r *ChannelRegistry) Add(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.ID()] = ch
}

// Remove drops a channel handle
func (r *ChannelRegistry) Remove(id model.ChannelID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, id)
}

// Get returns the channel with the given ID, or nil if it is gone
func (r *ChannelRegistry) Get(id model.ChannelID) Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channels[id]
}

// Count returns the number of live channels
func (r *ChannelRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
