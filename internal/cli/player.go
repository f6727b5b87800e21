package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// playerView mirrors the player shape of the reporting API
type playerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
	}

	playerCmd.AddCommand(newPlayerCreateCmd())
	playerCmd.AddCommand(newPlayerGetCmd())

	return playerCmd
}

func newPlayerCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"name": args[0]}

			var result playerView
			if err := client.Post("/api/v1/players", body, &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return printJSON(result)
			}

			fmt.Printf("Registered %s as %s\n", result.Name, result.ID)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result playerView
			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return printJSON(result)
			}

			printKV("ID", result.ID)
			printKV("Name", result.Name)
			printKV("Created", result.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}
}
