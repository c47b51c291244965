package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round commands",
	}

	cmd.AddCommand(newRoundGetCmd())
	cmd.AddCommand(newRoundMoveCmd())
	cmd.AddCommand(newRoundCloseCmd())

	return cmd
}

func newRoundGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <round-ref>",
		Short: "Show a round and the moves visible for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := url.PathEscape(args[0])

			var result RoundStatus

			if err := client.Get(fmt.Sprintf("/api/v1/rounds/%s", ref), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <round-ref> <amount>",
		Short: "Take resources from the round's pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := url.PathEscape(args[0])

			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			req := map[string]int{"resource_amount": amount}
			var result MoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/rounds/%s/moves", ref), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundCloseCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "close <round-ref>",
		Short: "Attempt to close a round",
		Long: `Attempt to close a round. The peer closes the round only once every
player in the session's roster has a visible move; otherwise it reports WAIT.

With --watch the command retries until the round closes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := url.PathEscape(args[0])
			out := NewOutput(cfg.Output)

			for {
				var result CloseResult

				if err := client.Post(fmt.Sprintf("/api/v1/rounds/%s/close", ref), nil, &result); err != nil {
					return err
				}

				if !watch || result.NextAction != "WAIT" {
					out.Print(result)
					return nil
				}

				if cfg.Verbose {
					out.PrintMessage("waiting for moves to propagate")
				}
				time.Sleep(interval)
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Retry until the round closes")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Polling interval for --watch")

	return cmd
}
