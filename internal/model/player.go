package model

import "time"

// PlayerID uniquely identifies a registered participant across the system
type PlayerID string

// ChannelID identifies the live connection a participant is attached to.
// It is opaque to the coordinator; the transport layer assigns it.
type ChannelID string

// Presence values for a player record
const (
	PresenceOnline = "online"
)

// DefaultPlayerName is used when registration supplies no display name
const DefaultPlayerName = "Anonymous"

// Player represents one connected participant. A player record lives exactly
// as long as its channel: it is created on registration and deleted on
// disconnect.
type Player struct {
	ID       PlayerID
	Name     string
	Presence string
	Channel  ChannelID
	// GameID is a non-owning back-reference to the player's current game.
	// Empty when the player is not in a game.
	GameID     GameID
	LastActive time.Time
	CreatedAt  time.Time
}

// Info returns the display snapshot used in notifications and API responses
func (p *Player) Info() PlayerInfo {
	return PlayerInfo{ID: string(p.ID), Name: p.Name}
}
