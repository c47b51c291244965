package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game directory commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayersCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <code>",
		Short: "Create a shared game code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0]}
			var result CreateGameResult

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code> <nickname>",
		Short: "Join a game by code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := url.PathEscape(args[0])

			req := map[string]string{"nickname": args[1]}
			var result JoinGameResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <code>",
		Short: "List players registered under a game code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := url.PathEscape(args[0])

			var result PlayersResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/players", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
