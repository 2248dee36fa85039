package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"turbocycle/internal/database"
	"turbocycle/internal/models"
	"turbocycle/internal/plots"
	"turbocycle/internal/sweep"
)

// SweepRefresh periodically re-evaluates the configured sweeps, feeding the
// result channel the collector drains. Used by watch mode.
type SweepRefresh struct {
	runner      *sweep.Runner
	definitions []sweep.Definition
	out         chan<- *models.SweepResult
	interval    time.Duration
}

func NewSweepRefresh(runner *sweep.Runner, definitions []sweep.Definition, out chan<- *models.SweepResult, interval time.Duration) *SweepRefresh {
	return &SweepRefresh{
		runner:      runner,
		definitions: definitions,
		out:         out,
		interval:    interval,
	}
}

func (t *SweepRefresh) Name() string { return "sweep_refresh" }

func (t *SweepRefresh) Interval() time.Duration { return t.interval }

// Run evaluates every configured sweep under a fresh batch id.
func (t *SweepRefresh) Run(ctx context.Context) error {
	batch := sweep.NewBatchID()
	for _, def := range t.definitions {
		if err := t.runner.Run(ctx, def, batch, t.out); err != nil {
			return err
		}
	}
	slog.Info("Sweeps refreshed", "sweeps", len(t.definitions), "batch", batch)
	return nil
}

// PlotRefresh periodically re-renders the performance plots from the latest
// stored batch of each sweep.
type PlotRefresh struct {
	results  database.ResultRepository
	renderer *plots.Renderer
	sweeps   []string
	interval time.Duration
}

func NewPlotRefresh(results database.ResultRepository, renderer *plots.Renderer, sweeps []string, interval time.Duration) *PlotRefresh {
	return &PlotRefresh{
		results:  results,
		renderer: renderer,
		sweeps:   sweeps,
		interval: interval,
	}
}

func (t *PlotRefresh) Name() string { return "plot_refresh" }

func (t *PlotRefresh) Interval() time.Duration { return t.interval }

// Run renders the plots for every sweep that has stored results. Sweeps
// that have not produced a batch yet are skipped quietly; the first refresh
// usually runs before the collector has flushed anything.
func (t *PlotRefresh) Run(ctx context.Context) error {
	for _, name := range t.sweeps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := t.results.LatestBatch(name)
		if errors.Is(err, database.ErrNoResults) {
			continue
		}
		if err != nil {
			return err
		}

		results, err := t.results.ListBySweep(name, batch)
		if err != nil {
			return err
		}

		paths, err := t.renderer.RenderSweep(results)
		if err != nil {
			return err
		}
		slog.Info("Plots refreshed", "sweep", name, "batch", batch, "files", paths)
	}
	return nil
}
