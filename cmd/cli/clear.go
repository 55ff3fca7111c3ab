package main

import (
	"github.com/spf13/cobra"

	"github.com/nilszeilon/keystats/internal/storage"
)

func (a *app) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded keystroke count",
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

			if err := store.Clear(); err != nil {
				return err
			}
			logger.Info().Str("path", cfg.DBPath()).Msg("keystroke counts cleared")
			return nil
		},
	}
}
