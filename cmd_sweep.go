package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"turbocycle/internal/config"
	"turbocycle/internal/database"
	"turbocycle/internal/models"
	"turbocycle/internal/plots"
	"turbocycle/internal/sweep"
	"turbocycle/internal/tasks"
)

var sweepPlots bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the configured sensitivity sweeps and store the results",
	Long: `Sweep evaluates the ambient-temperature and pressure-ratio sensitivity
sweeps concurrently and commits the results to the database under a fresh
batch id. With --plots the performance plots are rendered afterwards.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepPlots, "plots", false, "Render performance plots after sweeping")
}

// sweepDefinitions builds the standard sweep set from configuration
func sweepDefinitions(cfg *config.Config) []sweep.Definition {
	return []sweep.Definition{
		sweep.TemperatureDefinition(
			cfg.Sweep.Temperature.Min,
			cfg.Sweep.Temperature.Max,
			cfg.Sweep.Temperature.Points,
			cfg.Ambient.Pressure,
		),
		sweep.PressureRatioDefinition(
			cfg.Sweep.PressureRatio.Min,
			cfg.Sweep.PressureRatio.Max,
			cfg.Sweep.PressureRatio.Points,
			models.OperatingPoint{
				AmbientTemperature: cfg.Ambient.Temperature,
				AmbientPressure:    cfg.Ambient.Pressure,
			},
		),
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	defs := sweepDefinitions(cfg)
	runner := sweep.NewRunner(engineFromConfig(cfg), cfg.Sweep.Workers)

	resultChan := make(chan *models.SweepResult, 1000)
	collector := tasks.NewResultCollectorWithConfig(db.Results(), resultChan,
		cfg.BatchSize, time.Duration(cfg.BatchTimeout)*time.Second)

	collectorDone := make(chan error, 1)
	go func() {
		collectorDone <- collector.Start(ctx)
	}()

	batch := sweep.NewBatchID()
	slog.Info("Starting sweeps", "sweeps", len(defs), "batch", batch, "workers", cfg.Sweep.Workers)

	for _, def := range defs {
		if err := runner.Run(ctx, def, batch, resultChan); err != nil {
			close(resultChan)
			<-collectorDone
			return err
		}
	}
	close(resultChan)

	if err := <-collectorDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("Sweeps stored", "batch", batch)

	if sweepPlots {
		renderer := plots.NewRenderer(cfg.Plots.Dir, cfg.Plots.DPI)
		for _, def := range defs {
			results, err := db.Results().ListBySweep(def.Name, batch)
			if err != nil {
				return err
			}
			paths, err := renderer.RenderSweep(results)
			if err != nil {
				return err
			}
			slog.Info("Plots rendered", "sweep", def.Name, "files", paths)
		}
	}

	return nil
}
