// Package daemon wires the sweep pipeline together for watch mode: the
// scheduler periodically re-runs the configured sweeps, the runner feeds
// results into a buffered channel, and the collector commits them to the
// database while the plot task re-renders the performance figures.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"turbocycle/internal/database"
	"turbocycle/internal/models"
	"turbocycle/internal/plots"
	"turbocycle/internal/scheduler"
	"turbocycle/internal/sweep"
	"turbocycle/internal/tasks"
)

// Daemon represents the watch-mode daemon
type Daemon struct {
	ctx           context.Context
	cancel        context.CancelFunc
	scheduler     *scheduler.Scheduler
	database      *database.DB
	resultChan    chan *models.SweepResult
	collectorDone chan error
}

// Config holds daemon configuration
type Config struct {
	DBPath       string             // Path to SQLite database
	BatchSize    int                // Number of results to batch before writing
	BatchTimeout time.Duration      // Flush batch after this time even if not full
	Interval     time.Duration      // Sweep refresh period
	Runner       *sweep.Runner      // Evaluates sweep points
	Definitions  []sweep.Definition // Sweeps to refresh
	Renderer     *plots.Renderer    // Renders performance plots
}

// New creates a new daemon instance
func New(cfg Config) (*Daemon, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("Runner is required")
	}
	if len(cfg.Definitions) == 0 {
		return nil, fmt.Errorf("at least one sweep definition is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("Interval must be positive")
	}

	ctx, cancel := context.WithCancel(context.Background())

	db, err := database.New(cfg.DBPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	resultChan := make(chan *models.SweepResult, 1000)

	batchSize := 100
	if cfg.BatchSize > 0 {
		batchSize = cfg.BatchSize
	}
	batchTimeout := 5 * time.Second
	if cfg.BatchTimeout > 0 {
		batchTimeout = cfg.BatchTimeout
	}

	sched := scheduler.New(ctx)
	sched.AddTask(tasks.NewSweepRefresh(cfg.Runner, cfg.Definitions, resultChan, cfg.Interval))

	if cfg.Renderer != nil {
		names := make([]string, len(cfg.Definitions))
		for i, def := range cfg.Definitions {
			names[i] = def.Name
		}
		sched.AddTask(tasks.NewPlotRefresh(db.Results(), cfg.Renderer, names, cfg.Interval))
	}

	d := &Daemon{
		ctx:           ctx,
		cancel:        cancel,
		scheduler:     sched,
		database:      db,
		resultChan:    resultChan,
		collectorDone: make(chan error, 1),
	}

	// Start the collector in the background; it drains the result channel
	// for the whole daemon lifetime.
	collector := tasks.NewResultCollectorWithConfig(db.Results(), resultChan, batchSize, batchTimeout)
	go func() {
		err := collector.Start(ctx)
		if err != nil && ctx.Err() == nil {
			slog.Error("Result collector stopped", "error", err)
		}
		d.collectorDone <- err
	}()

	return d, nil
}

// Start begins the scheduled sweep and plot refreshes
func (d *Daemon) Start() error {
	slog.Info("Starting daemon")
	d.scheduler.Start()
	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon, flushing any buffered results
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")

	// Stop producing first so the collector can drain and flush on cancel.
	d.scheduler.Stop()
	d.cancel()
	<-d.collectorDone

	if err := d.database.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
