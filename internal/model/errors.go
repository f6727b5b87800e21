package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrMissingPlayerID = errors.New("player id is required")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrMissingGameID   = errors.New("game id is required")
	ErrGameNotJoinable = errors.New("game is not available to join")
	ErrGameFull        = errors.New("game is full")
	ErrNotInGame       = errors.New("player is not in this game")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrGameFinished    = errors.New("game is already finished")

	// Move errors
	ErrWrongRound   = errors.New("move is not for the current round")
	ErrWrongRole    = errors.New("move role does not match this round's assignment")
	ErrAlreadyMoved = errors.New("player has already moved this round")
	ErrInvalidCell  = errors.New("invalid goal cell")
)
