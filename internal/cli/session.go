package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionMineCmd())

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start a session with the players registered under a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := url.PathEscape(args[0])

			var result StartSessionResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/sessions", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List sessions started by this peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionsResult

			if err := client.Get("/api/v1/sessions/mine", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
