package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/render"
	"github.com/robalobadob/mastermind/internal/script"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	JSON bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted game and check its expectations",
		Long: `Replay a YAML command script and print the final board.

Exit codes:
  0 - Every want/expect clause matched
  1 - At least one expectation failed
  2 - Command error (unreadable or invalid script, bad index)

Examples:
  mastermind replay testdata/test_mode.yaml
  mastermind replay game.yaml --json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the final snapshot as JSON")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}

	res, err := script.Run(s, controller.WithLogger(log.Logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "replay aborted", err)
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Final); err != nil {
			return WrapExitError(ExitCommandError, "encode snapshot", err)
		}
	} else {
		fmt.Fprintf(out, "%s: %d steps\n", s.Name, len(res.Outcomes))
		fmt.Fprint(out, render.Board(res.Final))
	}

	if err := script.Check(s, res); err != nil {
		return WrapExitError(ExitFailure, "expectations failed", err)
	}
	return nil
}
