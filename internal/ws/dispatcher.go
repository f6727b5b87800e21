package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/services/game"
	"github.com/shootout-game/shootout-go/internal/services/player"
)

// Dispatcher maps inbound events to engine operations and routes the
// resulting notifications. It holds no state of its own: membership is
// resolved through the registries at send time.
type Dispatcher struct {
	players  *player.Registry
	games    *game.Controller
	channels *ChannelRegistry
	logger   *slog.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(players *player.Registry, games *game.Controller, channels *ChannelRegistry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		players:  players,
		games:    games,
		channels: channels,
		logger:   logger.With(slog.String("component", "dispatcher")),
	}
}

// HandleMessage routes one inbound envelope from a channel. Operation errors
// are translated to a game_error event delivered only to the originating
// channel, never broadcast.
func (d *Dispatcher) HandleMessage(ctx context.Context, ch Channel, raw []byte) {
	var env model.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		ch.Send(model.EventGameError, model.GameErrorPayload{
			Code:    CodeInvalidRequest,
			Message: "Malformed message",
		})
		return
	}

	d.logger.Debug("inbound event",
		slog.String("channel", string(ch.ID())),
		slog.String("event", string(env.Event)),
	)

	switch env.Event {
	case model.EventRegisterPlayer:
		d.handleRegister(ctx, ch, env.Data)
	case model.EventCreateGame:
		d.handleCreateGame(ctx, ch, env.Data)
	case model.EventJoinGame:
		d.handleJoinGame(ctx, ch, env.Data)
	case model.EventSubmitMove:
		d.handleSubmitMove(ctx, ch, env.Data)
	case model.EventPingTest:
		ch.Send(model.EventPongTest, nil)
	default:
		ch.Send(model.EventGameError, model.GameErrorPayload{
			Code:    CodeUnknownEvent,
			Message: "Unknown event: " + string(env.Event),
		})
	}
}

// HandleDisconnect runs the disconnect flow for a dropped channel. There is
// no caller to report errors to; failures are logged and the registries are
// left to self-heal.
func (d *Dispatcher) HandleDisconnect(ctx context.Context, ch Channel) {
	result, err := d.games.Disconnect(ctx, ch.ID())
	if err != nil {
		d.logger.Error("disconnect cleanup failed",
			slog.String("channel", string(ch.ID())),
			slog.String("error", err.Error()),
		)
		return
	}
	if result == nil {
		return
	}

	for _, member := range result.Notify {
		peer := d.channels.Get(member.Channel)
		if peer == nil {
			continue
		}
		peer.Send(model.EventPlayerDisconnected, model.PlayerDisconnectedPayload{
			PlayerID: string(result.PlayerID),
			Message:  "Opponent disconnected",
		})
	}

	d.logger.Info("player disconnected",
		slog.String("player_id", string(result.PlayerID)),
	)
}

func (d *Dispatcher) handleRegister(ctx context.Context, ch Channel, data json.RawMessage) {
	var payload model.RegisterPlayerPayload
	decodePayload(data, &payload)

	p, err := d.players.Register(ctx, ch.ID(), payload.Name)
	if err != nil {
		d.sendError(ch, err)
		return
	}

	ch.Send(model.EventPlayerRegistered, model.PlayerRegisteredPayload{
		PlayerID: string(p.ID),
		Name:     p.Name,
		Message:  "Successfully registered",
	})
}

func (d *Dispatcher) handleCreateGame(ctx context.Context, ch Channel, data json.RawMessage) {
	var payload model.CreateGamePayload
	decodePayload(data, &payload)

	// The channel identity stands in when no player ID is supplied,
	// matching the lenient protocol the clients expect
	playerID := model.PlayerID(payload.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID(ch.ID())
	}

	g, members, err := d.games.CreateGame(ctx, playerID, ch.ID())
	if err != nil {
		d.sendError(ch, err)
		return
	}

	ch.Send(model.EventGameCreated, model.GameCreatedPayload{
		GameID:  string(g.ID),
		Message: "Game created successfully",
		GameData: model.GameData{
			GameID:    string(g.ID),
			Status:    string(g.State),
			Players:   members,
			CreatedAt: g.CreatedAt,
		},
	})
}

func (d *Dispatcher) handleJoinGame(ctx context.Context, ch Channel, data json.RawMessage) {
	var payload model.JoinGamePayload
	decodePayload(data, &payload)

	playerID := model.PlayerID(payload.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID(ch.ID())
	}

	g, members, err := d.games.JoinGame(ctx, model.GameID(payload.GameID), playerID, ch.ID())
	if err != nil {
		d.sendError(ch, err)
		return
	}

	d.broadcast(ctx, g, model.EventGameReady, model.GameReadyPayload{
		GameID:  string(g.ID),
		Status:  string(g.State),
		Players: members,
		Message: "Game is ready to start",
	})
}

func (d *Dispatcher) handleSubmitMove(ctx context.Context, ch Channel, data json.RawMessage) {
	var payload model.SubmitMovePayload
	decodePayload(data, &payload)

	result, err := d.games.SubmitMove(
		ctx,
		model.GameID(payload.GameID),
		model.PlayerID(payload.PlayerID),
		payload.Round,
		model.Cell(payload.Cell),
		model.Role(payload.Role),
	)
	if err != nil {
		d.sendError(ch, err)
		return
	}

	ch.Send(model.EventMoveRecorded, model.MoveRecordedPayload{
		GameID:  payload.GameID,
		Round:   payload.Round,
		Message: "Move recorded",
	})

	if result.Resolved {
		d.broadcast(ctx, result.Game, model.EventRoundResult, model.RoundResultPayload{
			GameID:     string(result.Game.ID),
			Round:      result.Record.Round,
			KickerCell: int(result.Record.KickerCell),
			KeeperCell: int(result.Record.KeeperCell),
			Outcome:    string(result.Record.Outcome),
			Scores:     result.Game.Scores,
		})
	}

	if result.GameOver {
		d.broadcast(ctx, result.Game, model.EventGameOver, model.GameOverPayload{
			GameID: string(result.Game.ID),
			Scores: result.Game.Scores,
			Winner: string(result.Winner),
		})
	}
}

// broadcast fans an event out to every member of a game, resolving each
// member's channel through the registries at send time. Members whose
// channel is gone are skipped.
func (d *Dispatcher) broadcast(ctx context.Context, g *model.Game, event model.EventType, data any) {
	for _, memberID := range g.Players {
		p, err := d.players.Get(ctx, memberID)
		if err != nil {
			continue
		}
		peer := d.channels.Get(p.Channel)
		if peer == nil {
			continue
		}
		peer.Send(event, data)
	}
}

func (d *Dispatcher) sendError(ch Channel, err error) {
	payload := errorPayload(err)
	if payload.Code == CodeInternalError {
		d.logger.Error("operation failed",
			slog.String("channel", string(ch.ID())),
			slog.String("error", err.Error()),
		)
	}
	ch.Send(model.EventGameError, payload)
}

// decodePayload tolerates absent or malformed payloads, leaving the target
// zero-valued; required-field validation happens in the engine
func decodePayload(data json.RawMessage, target any) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}
