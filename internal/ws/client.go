package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shootout-game/shootout-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping cadence; must be shorter than pongWait
	pingPeriod = 30 * time.Second

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one websocket connection. Reads are pumped by the HTTP handler
// goroutine; writes go through a buffered channel drained by writePump so a
// slow client never blocks the registries.
type Client struct {
	id     model.ChannelID
	conn   *websocket.Conn
	logger *slog.Logger

	// mu guards send against close. Broadcasts arrive from other
	// connections' read goroutines, so a peer can call Send at any point
	// relative to this client's teardown.
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

var _ Channel = (*Client)(nil)

// NewClient wraps an upgraded connection with a fresh channel identity
func NewClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	id := model.ChannelID(uuid.NewString())
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("channel", string(id))),
	}
}

// ID returns the channel identity
func (c *Client) ID() model.ChannelID {
	return c.id
}

// Send queues an event for delivery. If the client's buffer is full, or the
// client has already been torn down, the event is dropped rather than
// blocking or panicking the caller.
func (c *Client) Send(event model.EventType, data any) {
	msg, err := encodeEnvelope(event, data)
	if err != nil {
		c.logger.Error("failed to encode outbound event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- msg:
	default:
		c.logger.Warn("outbound event dropped - client buffer full",
			slog.String("event", string(event)),
		)
	}
}

// close stops the write pump. Safe to call more than once, and safe against
// concurrent Send.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send buffer to the connection and keeps it alive with
// pings. Runs in its own goroutine; exits when the send channel closes or a
// write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads inbound envelopes and hands them to the dispatcher until
// the connection drops
func (c *Client) readPump(ctx context.Context, dispatcher *Dispatcher) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}
		dispatcher.HandleMessage(ctx, c, msg)
	}
}

// encodeEnvelope marshals an outbound event into the wire framing
func encodeEnvelope(event model.EventType, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return json.Marshal(model.Envelope{Event: event, Data: raw})
}
