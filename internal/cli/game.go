package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// gameSummary mirrors the list-view shape of the reporting API
type gameSummary struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	PlayerCount int       `json:"player_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// gameDetail mirrors the detail-view shape of the reporting API
type gameDetail struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Players      []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"players"`
	CurrentRound int       `json:"current_round"`
	Scores       [2]int    `json:"scores"`
	CreatedAt    time.Time `json:"created_at"`
}

type gameList struct {
	Games []gameSummary `json:"games"`
}

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Inspect games",
	}

	gameCmd.AddCommand(newGameListCmd())
	gameCmd.AddCommand(newGameGetCmd())

	return gameCmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result gameList
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return printJSON(result)
			}

			if len(result.Games) == 0 {
				fmt.Println("No games")
				return nil
			}

			w := newTabWriter()
			fmt.Fprintln(w, "ID\tSTATUS\tPLAYERS\tCREATED")
			for _, g := range result.Games {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					g.ID, g.Status, g.PlayerCount, g.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a game's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result gameDetail
			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			if cfg.Output == "json" {
				return printJSON(result)
			}

			printKV("ID", result.ID)
			printKV("Status", result.Status)
			printKV("Round", result.CurrentRound)
			printKV("Scores", fmt.Sprintf("%d - %d", result.Scores[0], result.Scores[1]))
			printKV("Created", result.CreatedAt.Format(time.RFC3339))
			for i, p := range result.Players {
				printKV(fmt.Sprintf("Player %d", i+1), fmt.Sprintf("%s (%s)", p.Name, p.ID))
			}
			return nil
		},
	}
}
