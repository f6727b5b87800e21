package model

import (
	"encoding/json"
	"time"
)

// EventType identifies a wire event
type EventType string

// Inbound events
const (
	EventRegisterPlayer EventType = "register_player"
	EventCreateGame     EventType = "create_game"
	EventJoinGame       EventType = "join_game"
	EventSubmitMove     EventType = "submit_move"
	EventPingTest       EventType = "ping_test"
)

// Outbound events
const (
	EventPlayerRegistered   EventType = "player_registered"
	EventGameCreated        EventType = "game_created"
	EventGameReady          EventType = "game_ready"
	EventMoveRecorded       EventType = "move_recorded"
	EventRoundResult        EventType = "round_result"
	EventGameOver           EventType = "game_over"
	EventPongTest           EventType = "pong_test"
	EventPlayerDisconnected EventType = "player_disconnected"
	EventGameError          EventType = "game_error"
)

// Envelope is the framing for every message on a channel: one JSON object per
// websocket text message
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PlayerInfo is the display snapshot of a member included in notifications
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegisterPlayerPayload is the data for register_player
type RegisterPlayerPayload struct {
	Name string `json:"name"`
}

// PlayerRegisteredPayload is the data for player_registered
type PlayerRegisteredPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// CreateGamePayload is the data for create_game
type CreateGamePayload struct {
	PlayerID string `json:"playerId"`
}

// GameData is the game snapshot embedded in game_created
type GameData struct {
	GameID    string       `json:"gameId"`
	Status    string       `json:"status"`
	Players   []PlayerInfo `json:"players"`
	CreatedAt time.Time    `json:"createdAt"`
}

// GameCreatedPayload is the data for game_created
type GameCreatedPayload struct {
	GameID   string   `json:"gameId"`
	Message  string   `json:"message"`
	GameData GameData `json:"gameData"`
}

// JoinGamePayload is the data for join_game
type JoinGamePayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// GameReadyPayload is the data for game_ready, broadcast to every member
type GameReadyPayload struct {
	GameID  string       `json:"gameId"`
	Status  string       `json:"status"`
	Players []PlayerInfo `json:"players"`
	Message string       `json:"message"`
}

// SubmitMovePayload is the data for submit_move
type SubmitMovePayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Round    int    `json:"round"`
	Cell     int    `json:"cell"`
	Role     string `json:"role"`
}

// MoveRecordedPayload is the data for move_recorded, unicast to the mover
type MoveRecordedPayload struct {
	GameID  string `json:"gameId"`
	Round   int    `json:"round"`
	Message string `json:"message"`
}

// RoundResultPayload is the data for round_result, broadcast on resolution
type RoundResultPayload struct {
	GameID     string `json:"gameId"`
	Round      int    `json:"round"`
	KickerCell int    `json:"kickerCell"`
	KeeperCell int    `json:"keeperCell"`
	Outcome    string `json:"outcome"`
	Scores     [2]int `json:"scores"`
}

// GameOverPayload is the data for game_over. Winner is empty on a tie.
type GameOverPayload struct {
	GameID string `json:"gameId"`
	Scores [2]int `json:"scores"`
	Winner string `json:"winner"`
}

// PlayerDisconnectedPayload is the data for player_disconnected, sent to the
// remaining members
type PlayerDisconnectedPayload struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}

// GameErrorPayload is the data for game_error, always unicast to the
// originating channel
type GameErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
