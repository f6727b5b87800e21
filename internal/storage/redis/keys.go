package redis

import "github.com/shootout-game/shootout-go/internal/model"

const (
	playerKeyPrefix = "shootout:player:"
	gameKeyPrefix   = "shootout:game:"
)

func playerKey(id model.PlayerID) string {
	return playerKeyPrefix + string(id)
}

func gameKey(id model.GameID) string {
	return gameKeyPrefix + string(id)
}
