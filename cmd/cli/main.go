package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nilszeilon/keystats/internal/config"
	"github.com/nilszeilon/keystats/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	debug  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "keystats",
		Short: "Record daily per-key keyboard press counts",
		Long: `keystats reads key presses from the Linux input devices and keeps a
daily count per key in a local database.

The user must belong to the input group (KEYSTATS_INPUT_GROUP, default "input").

Examples:
  keystats                 # Trace keystrokes until interrupted
  keystats -d              # Trace with debug logging
  keystats stats --days 7  # Summarize the last week`,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return a.runTracer(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(a.newStatsCmd())
	rootCmd.AddCommand(a.newClearCmd())
	return rootCmd
}

// setup loads the configuration and builds the logger shared by every command.
func (a *app) setup() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadEnvFiles(); err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.LogLevel
	if a.debug {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.LogFormat, a.stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger = logger.With().Str("session", uuid.NewString()).Logger()
	return cfg, logger, nil
}
