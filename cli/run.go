package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/sparse-gol/pattern"
	"github.com/sheikhrachel/sparse-gol/session"
	"github.com/sheikhrachel/sparse-gol/utils"
)

// RunOptions holds flags for the run command
type RunOptions struct {
	Pattern   string
	Auto      bool
	FrameRate time.Duration
	Max       int
}

// NewRunCommand creates the interactive run command
func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an interactive session",
		Long: `Run an interactive session in the terminal.

Controls, one per line on stdin:
  <enter>  advance one turn
  p        play / pause auto advance
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := applyRunFlags(cmd, root.Config, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}

			p, err := pattern.Load(cfg.Pattern)
			if err != nil {
				return err
			}

			s, err := session.New(cfg, p.Centered(), cmd.OutOrStdout(), root.Logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return s.Run(ctx, readCommands(ctx, cmd.InOrStdin()))
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "built-in pattern name or pattern file")
	cmd.Flags().BoolVarP(&opts.Auto, "auto", "a", false, "start with auto advance enabled")
	cmd.Flags().DurationVar(&opts.FrameRate, "frame-rate", 0, "auto advance interval")
	cmd.Flags().IntVar(&opts.Max, "max-generations", 0, "stop after this many generations (0 = unlimited)")

	return cmd
}

// applyRunFlags overrides config values with the flags the user actually set
func applyRunFlags(cmd *cobra.Command, cfg utils.Config, opts *RunOptions) utils.Config {
	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = opts.Pattern
	}
	if flags.Changed("auto") {
		cfg.AutoAdvance = opts.Auto
	}
	if flags.Changed("frame-rate") {
		cfg.FrameRate = utils.Duration(opts.FrameRate)
	}
	if flags.Changed("max-generations") {
		cfg.MaxGenerations = opts.Max
	}
	return cfg
}

// readCommands forwards parsed input lines until EOF, then closes the channel
func readCommands(ctx context.Context, r io.Reader) <-chan session.Command {
	out := make(chan session.Command)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cmd, ok := session.ParseCommand(scanner.Text())
			if !ok {
				continue
			}
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
