package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/events-board/internal/config"
	"github.com/pfrederiksen/events-board/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries settings resolved before any subcommand runs
type app struct {
	cfgFile  string
	logLevel string

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "events-board",
		Short: "Serve and inspect the community events board",
		Long: `A small web service listing community events.
Run "serve" to start the board, "list" to print what it shows, and
"seed" to load the default catalogue into a model-backed store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.events-board.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newSeedCmd(a),
	)

	return cmd
}

// init loads configuration and installs the default logger
func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	// Logs go to stderr so list output on stdout stays machine-readable
	a.log = logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(a.log)

	a.cfg = cfg
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
