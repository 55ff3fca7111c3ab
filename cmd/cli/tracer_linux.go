//go:build linux

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nilszeilon/keystats/internal/collector"
	"github.com/nilszeilon/keystats/internal/device"
	"github.com/nilszeilon/keystats/internal/storage"
)

// runTracer captures keystrokes until SIGINT or SIGTERM and then flushes what is buffered.
func (a *app) runTracer(cmd *cobra.Command) error {
	cfg, logger, err := a.setup()
	if err != nil {
		return err
	}
	logger.Info().Str("version", cmd.Version).Msg("starting keystats")

	guard := device.NewGuard(device.GuardOptions{
		Group:       cfg.InputGroup,
		InputDir:    cfg.InputDir,
		SysfsDir:    cfg.SysfsDir,
		Remediation: a.stderr,
		Logger:      logger,
	})
	session, err := guard.Check()
	if err != nil {
		return err
	}
	defer session.Close()

	store, err := storage.Open(cfg.StoreBackend, cfg.DBPath(), logger, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	kc, err := collector.NewKeypressCollector(collector.Options{
		Source:        session,
		Sink:          store,
		Logger:        logger,
		BufferSize:    cfg.BufferSize,
		FlushInterval: cfg.FlushInterval,
		PollTimeout:   cfg.PollTimeout,
		Metrics:       collector.NewMetrics(prometheus.NewRegistry()),
		MetricsFile:   cfg.MetricsFile,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Int("devices", session.Devices()).Msg("keystroke tracer started, press Ctrl+C to stop")
	if err := kc.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
