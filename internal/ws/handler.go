package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket channels and runs their pumps
type Handler struct {
	dispatcher *Dispatcher
	channels   *ChannelRegistry
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates the websocket endpoint handler
func NewHandler(dispatcher *Dispatcher, channels *ChannelRegistry, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		channels:   channels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The coordinator has no browser origin policy of its own;
			// deployments front it with their own origin checks
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP handles GET /ws
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(conn, h.logger)
	h.channels.Add(client)
	h.logger.Info("channel connected",
		slog.String("channel", string(client.ID())),
		slog.Int("total_channels", h.channels.Count()),
	)

	go client.writePump()

	// Read until the connection drops, then run the disconnect flow.
	// The request context is cancelled by then, so cleanup uses its own.
	client.readPump(r.Context(), h.dispatcher)

	h.channels.Remove(client.ID())
	h.dispatcher.HandleDisconnect(context.Background(), client)
	client.close()

	h.logger.Info("channel disconnected",
		slog.String("channel", string(client.ID())),
		slog.Int("total_channels", h.channels.Count()),
	)
}
