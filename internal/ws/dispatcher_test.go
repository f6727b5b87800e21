package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shootout-game/shootout-go/internal/dependencies/mocks"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/services/game"
	"github.com/shootout-game/shootout-go/internal/services/player"
	"github.com/shootout-game/shootout-go/internal/storage/memory"
	"github.com/shootout-game/shootout-go/internal/testutil"
)

// fakeChannel captures every event sent to it
type fakeChannel struct {
	id   model.ChannelID
	sent []sentEvent
}

type sentEvent struct {
	event model.EventType
	data  any
}

func (c *fakeChannel) ID() model.ChannelID { return c.id }

func (c *fakeChannel) Send(event model.EventType, data any) {
	c.sent = append(c.sent, sentEvent{event: event, data: data})
}

// last returns the most recent event, failing the test if none was sent
func (c *fakeChannel) last(t interface{ Fatalf(string, ...any) }) sentEvent {
	if len(c.sent) == 0 {
		t.Fatalf("no events sent on channel %s", c.id)
	}
	return c.sent[len(c.sent)-1]
}

type DispatcherSuite struct {
	suite.Suite
	storage    *memory.Storage
	players    *player.Registry
	games      *game.Controller
	channels   *ChannelRegistry
	dispatcher *Dispatcher
	clock      *mocks.MockClock
	ctx        context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.players = player.NewRegistry(s.storage, s.clock, rnd, logger)
	s.games = game.NewController(s.storage, s.players, s.clock, rnd, game.DefaultConfig(), logger)
	s.channels = NewChannelRegistry()
	s.dispatcher = NewDispatcher(s.players, s.games, s.channels, logger)
	s.ctx = context.Background()
}

// connect registers a fake channel as if a client had connected
func (s *DispatcherSuite) connect(id model.ChannelID) *fakeChannel {
	ch := &fakeChannel{id: id}
	s.channels.Add(ch)
	return ch
}

// send delivers an inbound envelope on the channel
func (s *DispatcherSuite) send(ch *fakeChannel, event model.EventType, payload any) {
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		data = raw
	}
	raw, err := json.Marshal(model.Envelope{Event: event, Data: data})
	s.Require().NoError(err)
	s.dispatcher.HandleMessage(s.ctx, ch, raw)
}

// registeredID registers a player over the wire and returns its assigned ID
func (s *DispatcherSuite) registeredID(ch *fakeChannel, name string) string {
	s.send(ch, model.EventRegisterPlayer, model.RegisterPlayerPayload{Name: name})
	payload := ch.last(s.T()).data.(model.PlayerRegisteredPayload)
	return payload.PlayerID
}

// Register tests

func (s *DispatcherSuite) TestRegisterPlayer() {
	ch := s.connect("chan-1")
	s.send(ch, model.EventRegisterPlayer, model.RegisterPlayerPayload{Name: "Alice"})

	last := ch.last(s.T())
	s.Equal(model.EventPlayerRegistered, last.event)

	payload := last.data.(model.PlayerRegisteredPayload)
	s.Equal("Alice", payload.Name)
	s.NotEmpty(payload.PlayerID)
	s.Equal("Successfully registered", payload.Message)
}

func (s *DispatcherSuite) TestRegisterPlayerDefaultsName() {
	ch := s.connect("chan-1")
	s.send(ch, model.EventRegisterPlayer, nil)

	payload := ch.last(s.T()).data.(model.PlayerRegisteredPayload)
	s.Equal("Anonymous", payload.Name)
}

// CreateGame tests

func (s *DispatcherSuite) TestCreateGame() {
	ch := s.connect("chan-1")
	playerID := s.registeredID(ch, "Alice")

	s.send(ch, model.EventCreateGame, model.CreateGamePayload{PlayerID: playerID})

	last := ch.last(s.T())
	s.Equal(model.EventGameCreated, last.event)

	payload := last.data.(model.GameCreatedPayload)
	s.NotEmpty(payload.GameID)
	s.Equal("waiting", payload.GameData.Status)
	s.Require().Len(payload.GameData.Players, 1)
	s.Equal("Alice", payload.GameData.Players[0].Name)
}

func (s *DispatcherSuite) TestCreateGameWithoutPlayerIDUsesChannelIdentity() {
	ch := s.connect("chan-1")

	s.send(ch, model.EventCreateGame, nil)

	last := ch.last(s.T())
	s.Equal(model.EventGameCreated, last.event)

	// The channel identity was auto-registered as a placeholder player
	payload := last.data.(model.GameCreatedPayload)
	s.Require().Len(payload.GameData.Players, 1)
	s.Equal("chan-1", payload.GameData.Players[0].ID)
}

// JoinGame tests

func (s *DispatcherSuite) TestJoinGameBroadcastsReadyToBothPlayers() {
	ch1 := s.connect("chan-1")
	ch2 := s.connect("chan-2")
	p1 := s.registeredID(ch1, "Alice")
	p2 := s.registeredID(ch2, "Bob")

	s.send(ch1, model.EventCreateGame, model.CreateGamePayload{PlayerID: p1})
	created := ch1.last(s.T()).data.(model.GameCreatedPayload)

	s.send(ch2, model.EventJoinGame, model.JoinGamePayload{GameID: created.GameID, PlayerID: p2})

	for _, ch := range []*fakeChannel{ch1, ch2} {
		last := ch.last(s.T())
		s.Equal(model.EventGameReady, last.event)

		payload := last.data.(model.GameReadyPayload)
		s.Equal(created.GameID, payload.GameID)
		s.Equal("ready", payload.Status)
		s.Require().Len(payload.Players, 2)
		s.Equal("Alice", payload.Players[0].Name)
		s.Equal("Bob", payload.Players[1].Name)
		s.Equal("Game is ready to start", payload.Message)
	}
}

func (s *DispatcherSuite) TestJoinNonexistentGameSendsError() {
	ch := s.connect("chan-1")
	p := s.registeredID(ch, "Alice")

	s.send(ch, model.EventJoinGame, model.JoinGamePayload{GameID: "game_0_zzzzz", PlayerID: p})

	last := ch.last(s.T())
	s.Equal(model.EventGameError, last.event)

	payload := last.data.(model.GameErrorPayload)
	s.Equal(CodeGameNotFound, payload.Code)
	s.Equal("Game not found", payload.Message)

	// Nothing was created or mutated
	games, err := s.games.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *DispatcherSuite) TestJoinWithoutGameIDSendsError() {
	ch := s.connect("chan-1")
	p := s.registeredID(ch, "Alice")

	s.send(ch, model.EventJoinGame, model.JoinGamePayload{PlayerID: p})

	payload := ch.last(s.T()).data.(model.GameErrorPayload)
	s.Equal(CodeInvalidRequest, payload.Code)
	s.Equal("Game ID is required", payload.Message)
}

func (s *DispatcherSuite) TestJoinReadyGameSendsError() {
	ch1 := s.connect("chan-1")
	ch2 := s.connect("chan-2")
	ch3 := s.connect("chan-3")
	p1 := s.registeredID(ch1, "Alice")
	p2 := s.registeredID(ch2, "Bob")
	p3 := s.registeredID(ch3, "Carol")

	s.send(ch1, model.EventCreateGame, model.CreateGamePayload{PlayerID: p1})
	created := ch1.last(s.T()).data.(model.GameCreatedPayload)
	s.send(ch2, model.EventJoinGame, model.JoinGamePayload{GameID: created.GameID, PlayerID: p2})

	s.send(ch3, model.EventJoinGame, model.JoinGamePayload{GameID: created.GameID, PlayerID: p3})

	payload := ch3.last(s.T()).data.(model.GameErrorPayload)
	s.Equal(CodeGameNotJoinable, payload.Code)
}

// SubmitMove tests

// setupReadyGame wires two registered channels into one ready game
func (s *DispatcherSuite) setupReadyGame() (ch1, ch2 *fakeChannel, p1, p2, gameID string) {
	ch1 = s.connect("chan-1")
	ch2 = s.connect("chan-2")
	p1 = s.registeredID(ch1, "Alice")
	p2 = s.registeredID(ch2, "Bob")

	s.send(ch1, model.EventCreateGame, model.CreateGamePayload{PlayerID: p1})
	created := ch1.last(s.T()).data.(model.GameCreatedPayload)
	s.send(ch2, model.EventJoinGame, model.JoinGamePayload{GameID: created.GameID, PlayerID: p2})

	return ch1, ch2, p1, p2, created.GameID
}

func (s *DispatcherSuite) TestSubmitMoveAcknowledgesMover() {
	ch1, ch2, p1, _, gameID := s.setupReadyGame()

	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 0, Cell: 2, Role: "kicker",
	})

	last := ch1.last(s.T())
	s.Equal(model.EventMoveRecorded, last.event)
	payload := last.data.(model.MoveRecordedPayload)
	s.Equal(gameID, payload.GameID)
	s.Equal(0, payload.Round)

	// The opponent hears nothing until the round resolves
	s.Equal(model.EventGameReady, ch2.last(s.T()).event)
}

func (s *DispatcherSuite) TestRoundResolutionBroadcastsResult() {
	ch1, ch2, p1, p2, gameID := s.setupReadyGame()

	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 0, Cell: 2, Role: "kicker",
	})
	s.send(ch2, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p2, Round: 0, Cell: 4, Role: "goalkeeper",
	})

	for _, ch := range []*fakeChannel{ch1, ch2} {
		last := ch.last(s.T())
		s.Equal(model.EventRoundResult, last.event)

		payload := last.data.(model.RoundResultPayload)
		s.Equal(0, payload.Round)
		s.Equal(2, payload.KickerCell)
		s.Equal(4, payload.KeeperCell)
		s.Equal("goal", payload.Outcome)
		s.Equal([2]int{1, 0}, payload.Scores)
	}
}

func (s *DispatcherSuite) TestWrongRoleSendsError() {
	ch1, _, p1, _, gameID := s.setupReadyGame()

	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 0, Cell: 2, Role: "goalkeeper",
	})

	payload := ch1.last(s.T()).data.(model.GameErrorPayload)
	s.Equal(CodeWrongRole, payload.Code)
}

// Ping tests

func (s *DispatcherSuite) TestPingPong() {
	ch := s.connect("chan-1")
	s.send(ch, model.EventPingTest, nil)
	s.Equal(model.EventPongTest, ch.last(s.T()).event)
}

// Error routing tests

func (s *DispatcherSuite) TestUnknownEventSendsError() {
	ch := s.connect("chan-1")
	s.send(ch, "warp_drive", nil)

	payload := ch.last(s.T()).data.(model.GameErrorPayload)
	s.Equal(CodeUnknownEvent, payload.Code)
}

func (s *DispatcherSuite) TestMalformedMessageSendsError() {
	ch := s.connect("chan-1")
	s.dispatcher.HandleMessage(s.ctx, ch, []byte("{not json"))

	payload := ch.last(s.T()).data.(model.GameErrorPayload)
	s.Equal(CodeInvalidRequest, payload.Code)
	s.Equal("Malformed message", payload.Message)
}

func (s *DispatcherSuite) TestErrorsAreNeverBroadcast() {
	ch1, ch2, p1, _, gameID := s.setupReadyGame()
	before := len(ch2.sent)

	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 5, Cell: 2, Role: "kicker",
	})

	s.Equal(model.EventGameError, ch1.last(s.T()).event)
	s.Len(ch2.sent, before)
}

// Disconnect tests

func (s *DispatcherSuite) TestDisconnectNotifiesPeerAndAbandonsGame() {
	ch1, ch2, _, _, gameID := s.setupReadyGame()

	s.channels.Remove(ch2.id)
	s.dispatcher.HandleDisconnect(s.ctx, ch2)

	last := ch1.last(s.T())
	s.Equal(model.EventPlayerDisconnected, last.event)

	payload := last.data.(model.PlayerDisconnectedPayload)
	s.Equal("Opponent disconnected", payload.Message)

	g, err := s.games.GetGame(s.ctx, model.GameID(gameID))
	s.Require().NoError(err)
	s.Equal(model.GameStateAbandoned, g.State)
}

func (s *DispatcherSuite) TestDisconnectUnknownChannelIsSilent() {
	ch := &fakeChannel{id: "never-seen"}
	s.dispatcher.HandleDisconnect(s.ctx, ch)
	s.Empty(ch.sent)
}

func (s *DispatcherSuite) TestDisconnectTwiceNotifiesOnce() {
	ch1, ch2, _, _, _ := s.setupReadyGame()

	s.channels.Remove(ch2.id)
	s.dispatcher.HandleDisconnect(s.ctx, ch2)
	notified := len(ch1.sent)

	s.dispatcher.HandleDisconnect(s.ctx, ch2)
	s.Len(ch1.sent, notified)
}

// Full game flow

func (s *DispatcherSuite) TestFullGameEndsWithGameOver() {
	s.games = game.NewController(s.storage, s.players, s.clock, mocks.NewMockRandom(), game.Config{MaxRounds: 2}, testutil.NopLogger())
	s.dispatcher = NewDispatcher(s.players, s.games, s.channels, testutil.NopLogger())

	ch1, ch2, p1, p2, gameID := s.setupReadyGame()

	// Round 0: p1 kicks and scores
	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 0, Cell: 1, Role: "kicker",
	})
	s.send(ch2, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p2, Round: 0, Cell: 3, Role: "goalkeeper",
	})

	// Round 1: p2 kicks, p1 saves
	s.send(ch2, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p2, Round: 1, Cell: 5, Role: "kicker",
	})
	s.send(ch1, model.EventSubmitMove, model.SubmitMovePayload{
		GameID: gameID, PlayerID: p1, Round: 1, Cell: 5, Role: "goalkeeper",
	})

	for _, ch := range []*fakeChannel{ch1, ch2} {
		last := ch.last(s.T())
		s.Equal(model.EventGameOver, last.event)

		payload := last.data.(model.GameOverPayload)
		s.Equal([2]int{1, 0}, payload.Scores)
		s.Equal(p1, payload.Winner)
	}

	g, err := s.games.GetGame(s.ctx, model.GameID(gameID))
	s.Require().NoError(err)
	s.Equal(model.GameStateComplete, g.State)
}
