package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"turbocycle/internal/daemon"
	"turbocycle/internal/plots"
	"turbocycle/internal/sweep"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run as a daemon, refreshing sweeps and plots on a schedule",
	Long: `Watch keeps the stored sweep results and performance plots current:
every watch_interval seconds the configured sweeps are re-evaluated under a
new batch id and the plots re-rendered. Useful while iterating on engine
parameters in the config file. Stops cleanly on SIGINT/SIGTERM.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := daemon.New(daemon.Config{
		DBPath:       cfg.DBPath,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: time.Duration(cfg.BatchTimeout) * time.Second,
		Interval:     time.Duration(cfg.WatchInterval) * time.Second,
		Runner:       sweep.NewRunner(engineFromConfig(cfg), cfg.Sweep.Workers),
		Definitions:  sweepDefinitions(cfg),
		Renderer:     plots.NewRenderer(cfg.Plots.Dir, cfg.Plots.DPI),
	})
	if err != nil {
		return err
	}

	if err := d.Start(); err != nil {
		return err
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("Received interrupt signal, shutting down...")

	return d.Stop()
}
