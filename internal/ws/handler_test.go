package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootout-game/shootout-go/internal/factory"
	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/testutil"
	"github.com/shootout-game/shootout-go/internal/ws"
)

// dial opens a websocket connection against a live test server
func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, event model.EventType, payload any) {
	t.Helper()

	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		data = raw
	}
	require.NoError(t, conn.WriteJSON(model.Envelope{Event: event, Data: data}))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) model.Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env model.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func newWSServer(t *testing.T) (*httptest.Server, *factory.App) {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	handler := ws.NewHandler(app.Dispatcher, app.Channels, testutil.NopLogger())
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, app
}

func TestWebsocketPingPong(t *testing.T) {
	server, _ := newWSServer(t)
	conn := dial(t, server)

	sendEnvelope(t, conn, model.EventPingTest, nil)

	env := readEnvelope(t, conn)
	assert.Equal(t, model.EventPongTest, env.Event)
}

func TestWebsocketRegisterOverTheWire(t *testing.T) {
	server, _ := newWSServer(t)
	conn := dial(t, server)

	sendEnvelope(t, conn, model.EventRegisterPlayer, model.RegisterPlayerPayload{Name: "Alice"})

	env := readEnvelope(t, conn)
	require.Equal(t, model.EventPlayerRegistered, env.Event)

	var payload model.PlayerRegisteredPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Alice", payload.Name)
	assert.True(t, strings.HasPrefix(payload.PlayerID, "player_"))
}

func TestWebsocketDisconnectCleansUp(t *testing.T) {
	server, app := newWSServer(t)
	conn := dial(t, server)

	sendEnvelope(t, conn, model.EventRegisterPlayer, model.RegisterPlayerPayload{Name: "Alice"})
	env := readEnvelope(t, conn)
	var registered model.PlayerRegisteredPayload
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	require.NoError(t, conn.Close())

	// The server-side disconnect flow removes the player record
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := app.Players.Get(context.Background(), model.PlayerID(registered.PlayerID)); err != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("player record not cleaned up after disconnect")
}
