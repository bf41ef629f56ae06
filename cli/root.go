package cli

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/sparse-gol/utils"
)

// RootOptions holds global flags and the config resolved from them
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	Config utils.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the gol CLI
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "gol",
		Short:        "Conway's Game of Life on an unbounded grid",
		Long:         "Sparse Game of Life: only live cells and their neighbors are stored and evaluated.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.json or .yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewPatternsCommand())

	return cmd
}

// resolve loads the config file, applies flag overrides and builds the logger
func (o *RootOptions) resolve(logOut io.Writer) error {
	o.Config = utils.DefaultConfig()
	if o.ConfigPath != "" {
		cfg, err := utils.LoadConfig(o.ConfigPath)
		if err != nil {
			return err
		}
		o.Config = cfg
	}
	if o.LogLevel != "" {
		o.Config.LogLevel = o.LogLevel
	}

	logger, err := utils.NewLogger(logOut, o.Config.LogLevel)
	if err != nil {
		return errors.Wrap(err, "[resolve] invalid --log-level")
	}
	o.Logger = logger
	return nil
}
