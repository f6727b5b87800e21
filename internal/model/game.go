package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the lifecycle phase of a game
type GameState string

const (
	GameStateWaiting    GameState = "waiting"     // One player, awaiting an opponent
	GameStateReady      GameState = "ready"       // Two players, about to start
	GameStateInProgress GameState = "in-progress" // Rounds underway
	GameStateAbandoned  GameState = "abandoned"   // A player disconnected mid-game
	GameStateComplete   GameState = "complete"    // All rounds played
)

// MaxPlayers is the fixed capacity of a game
const MaxPlayers = 2

// Role is a player's part in one round
type Role string

const (
	RoleKicker     Role = "kicker"
	RoleGoalkeeper Role = "goalkeeper"
)

// Outcome of a resolved round
type Outcome string

const (
	OutcomeGoal  Outcome = "goal"
	OutcomeSaved Outcome = "saved"
)

// Cell is a zone of the goal mouth. The client renders a 3x2 grid, so valid
// cells are 0 through 5.
type Cell int

// NumCells is the number of target zones in the goal
const NumCells = 6

// Valid reports whether the cell is a real goal zone
func (c Cell) Valid() bool {
	return c >= 0 && c < NumCells
}

// Move is one player's submission for the current round
type Move struct {
	Cell Cell
	Role Role
}

// RoundRecord is the immutable log entry for one completed round
type RoundRecord struct {
	Round      int
	KickerID   PlayerID
	KeeperID   PlayerID
	KickerCell Cell
	KeeperCell Cell
	Outcome    Outcome
}

// Game represents one penalty shootout between up to two players
type Game struct {
	ID    GameID
	State GameState

	// Players holds member IDs in join order. Slot 0 is the creator.
	Players []PlayerID

	CurrentRound int
	Scores       [MaxPlayers]int
	Rounds       []RoundRecord

	// Pending holds the moves submitted for the current round, cleared on
	// resolution
	Pending map[PlayerID]Move

	CreatedAt  time.Time
	LastActive time.Time
}

// SlotOf returns the player's membership slot, or -1 if not a member
func (g *Game) SlotOf(id PlayerID) int {
	for i, p := range g.Players {
		if p == id {
			return i
		}
	}
	return -1
}

// HasPlayer reports whether the player is a current member
func (g *Game) HasPlayer(id PlayerID) bool {
	return g.SlotOf(id) >= 0
}

// IsFull reports whether the game has both players
func (g *Game) IsFull() bool {
	return len(g.Players) >= MaxPlayers
}

// KickerFor returns the player kicking in the given round. The kicker
// alternates by slot each round. Returns "" until the game is full.
func (g *Game) KickerFor(round int) PlayerID {
	if !g.IsFull() {
		return ""
	}
	return g.Players[round%MaxPlayers]
}

// RoleFor returns the role the given member plays in the given round
func (g *Game) RoleFor(round int, id PlayerID) Role {
	if g.KickerFor(round) == id {
		return RoleKicker
	}
	return RoleGoalkeeper
}

// Active reports whether a disconnect should abandon the game. A game still
// waiting for an opponent has nobody to notify and is left as-is.
func (g *Game) Active() bool {
	return g.State == GameStateReady || g.State == GameStateInProgress
}

// Terminal reports whether the game can no longer accept moves
func (g *Game) Terminal() bool {
	return g.State == GameStateAbandoned || g.State == GameStateComplete
}

// Winner returns the leading player's ID, or "" on a tie
func (g *Game) Winner() PlayerID {
	if !g.IsFull() || g.Scores[0] == g.Scores[1] {
		return ""
	}
	if g.Scores[0] > g.Scores[1] {
		return g.Players[0]
	}
	return g.Players[1]
}
