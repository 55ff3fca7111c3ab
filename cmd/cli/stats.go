package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nilszeilon/keystats/internal/report"
	"github.com/nilszeilon/keystats/internal/storage"
)

func (a *app) newStatsCmd() *cobra.Command {
	var (
		days   int
		top    int
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print keystroke totals from the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg.StoreBackend, cfg.DBPath(), logger, nil)
			if err != nil {
				return err
			}
			defer store.Close()

			rep, err := report.Build(store, time.Now(), days, top)
			if err != nil {
				return err
			}
			return report.Write(a.stdout, rep, format)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of trailing days, today included")
	cmd.Flags().IntVar(&top, "top", 10, "Number of most pressed keys to list")
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatTable, "Output format: table, json or yaml")
	return cmd
}
