package ws

import (
	"errors"

	"github.com/shootout-game/shootout-go/internal/model"
)

// Stable error codes carried alongside the human-readable message in
// game_error payloads
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnknownEvent    = "UNKNOWN_EVENT"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeGameNotFound    = "GAME_NOT_FOUND"
	CodeGameNotJoinable = "GAME_NOT_JOINABLE"
	CodeGameFull        = "GAME_FULL"
	CodeNotInGame       = "NOT_IN_GAME"
	CodeGameNotStarted  = "GAME_NOT_STARTED"
	CodeGameFinished    = "GAME_FINISHED"
	CodeWrongRound      = "WRONG_ROUND"
	CodeWrongRole       = "WRONG_ROLE"
	CodeAlreadyMoved    = "ALREADY_MOVED"
	CodeInvalidCell     = "INVALID_CELL"
	CodeInternalError   = "INTERNAL_ERROR"
)

// errorPayload translates an engine error into the game_error payload sent
// back to the originating channel. Unexpected errors surface as a generic
// internal message, never the raw error text.
func errorPayload(err error) model.GameErrorPayload {
	switch {
	case errors.Is(err, model.ErrMissingGameID):
		return model.GameErrorPayload{Code: CodeInvalidRequest, Message: "Game ID is required"}
	case errors.Is(err, model.ErrMissingPlayerID):
		return model.GameErrorPayload{Code: CodeInvalidRequest, Message: "Player ID is required"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return model.GameErrorPayload{Code: CodePlayerNotFound, Message: "Player not found"}
	case errors.Is(err, model.ErrGameNotFound):
		return model.GameErrorPayload{Code: CodeGameNotFound, Message: "Game not found"}
	case errors.Is(err, model.ErrGameNotJoinable):
		return model.GameErrorPayload{Code: CodeGameNotJoinable, Message: "Game is not available to join"}
	case errors.Is(err, model.ErrGameFull):
		return model.GameErrorPayload{Code: CodeGameFull, Message: "Game is full"}
	case errors.Is(err, model.ErrNotInGame):
		return model.GameErrorPayload{Code: CodeNotInGame, Message: "You are not in this game"}
	case errors.Is(err, model.ErrGameNotStarted):
		return model.GameErrorPayload{Code: CodeGameNotStarted, Message: "Game has not started"}
	case errors.Is(err, model.ErrGameFinished):
		return model.GameErrorPayload{Code: CodeGameFinished, Message: "Game is already finished"}
	case errors.Is(err, model.ErrWrongRound):
		return model.GameErrorPayload{Code: CodeWrongRound, Message: "Move is not for the current round"}
	case errors.Is(err, model.ErrWrongRole):
		return model.GameErrorPayload{Code: CodeWrongRole, Message: "It is not your turn for that role"}
	case errors.Is(err, model.ErrAlreadyMoved):
		return model.GameErrorPayload{Code: CodeAlreadyMoved, Message: "You have already moved this round"}
	case errors.Is(err, model.ErrInvalidCell):
		return model.GameErrorPayload{Code: CodeInvalidCell, Message: "Invalid goal cell"}
	default:
		return model.GameErrorPayload{Code: CodeInternalError, Message: "Internal server error"}
	}
}
