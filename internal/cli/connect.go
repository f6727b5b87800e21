package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/shootout-game/shootout-go/internal/model"
)

func newConnectCmd() *cobra.Command {
	var (
		name     string
		create   bool
		join     string
		playerID string
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a live session and stream its events",
		Long: `connect opens a websocket session against the coordinator and prints
every event it receives. Use --name to register, --create to open a game,
or --join to enter an existing one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsURL := websocketURL(cfg.ServerURL)
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "connecting to %s\n", wsURL)
			}

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer func() { _ = conn.Close() }()

			if name != "" {
				if err := sendEvent(conn, model.EventRegisterPlayer, model.RegisterPlayerPayload{Name: name}); err != nil {
					return err
				}
			}
			if create {
				if err := sendEvent(conn, model.EventCreateGame, model.CreateGamePayload{PlayerID: playerID}); err != nil {
					return err
				}
			}
			if join != "" {
				if err := sendEvent(conn, model.EventJoinGame, model.JoinGamePayload{GameID: join, PlayerID: playerID}); err != nil {
					return err
				}
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			events := make(chan model.Envelope)
			errCh := make(chan error, 1)
			go func() {
				for {
					var env model.Envelope
					if err := conn.ReadJSON(&env); err != nil {
						errCh <- err
						return
					}
					events <- env
				}
			}()

			for {
				select {
				case env := <-events:
					printEvent(env)
				case err := <-errCh:
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					return fmt.Errorf("connection lost: %w", err)
				case <-sigCh:
					deadline := time.Now().Add(time.Second)
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Register with this display name on connect")
	cmd.Flags().BoolVar(&create, "create", false, "Create a new game on connect")
	cmd.Flags().StringVar(&join, "join", "", "Join this game ID on connect")
	cmd.Flags().StringVar(&playerID, "player", "", "Player ID to act as (defaults to the session identity)")

	return cmd
}

// websocketURL derives the websocket endpoint from the configured server URL
func websocketURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/ws"
}

func sendEvent(conn *websocket.Conn, event model.EventType, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event, err)
	}
	if err := conn.WriteJSON(model.Envelope{Event: event, Data: raw}); err != nil {
		return fmt.Errorf("failed to send %s: %w", event, err)
	}
	return nil
}

func printEvent(env model.Envelope) {
	if len(env.Data) == 0 {
		fmt.Printf("[%s]\n", env.Event)
		return
	}

	var pretty map[string]any
	if err := json.Unmarshal(env.Data, &pretty); err != nil {
		fmt.Printf("[%s] %s\n", env.Event, string(env.Data))
		return
	}
	formatted, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Printf("[%s] %s\n", env.Event, string(formatted))
}
