package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"turbocycle/internal/cycle"
	"turbocycle/internal/models"
)

// Runner evaluates sweep points concurrently and emits results on a
// caller-supplied channel. The engine is copied per point, so a Runner is
// safe for use from a single goroutine at a time while its workers run in
// parallel.
type Runner struct {
	engine  cycle.Engine
	workers int
}

// NewRunner creates a runner around the given baseline engine.
func NewRunner(engine *cycle.Engine, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		engine:  *engine,
		workers: workers,
	}
}

// Run evaluates every point of the sweep and sends the results to out.
// Points that fail to converge on a valid cycle (e.g. turbine overdraw at
// extreme pressure ratios) are logged and skipped; the sweep keeps going.
// Returns the context error if cancelled mid-sweep.
func (r *Runner) Run(ctx context.Context, def Definition, batch int64, out chan<- *models.SweepResult) error {
	if err := def.Validate(); err != nil {
		return err
	}

	values := def.Values()
	points := make(chan float64, len(values))
	for _, v := range values {
		points <- v
	}
	close(points)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for value := range points {
				select {
				case <-ctx.Done():
					return
				default:
				}

				res, err := r.evaluate(def, value)
				if err != nil {
					slog.Warn("Sweep point failed",
						"sweep", def.Name,
						"parameter", def.Parameter,
						"value", value,
						"error", err,
					)
					continue
				}
				res.Batch = batch

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Debug("Sweep complete",
		"sweep", def.Name,
		"points", len(values),
		"batch", batch,
	)
	return nil
}

// evaluate runs one point of the sweep against a per-point engine copy.
func (r *Runner) evaluate(def Definition, value float64) (*models.SweepResult, error) {
	engine := r.engine
	point := def.Ambient

	switch def.Parameter {
	case ParamAmbientTemperature:
		point.AmbientTemperature = value
	case ParamPressureRatio:
		engine.PressureRatio = value
		if point.AmbientTemperature == 0 {
			point.AmbientTemperature = cycle.SeaLevelTemperature
		}
	default:
		return nil, fmt.Errorf("unknown sweep parameter %q", def.Parameter)
	}
	if point.AmbientPressure == 0 {
		point.AmbientPressure = cycle.SeaLevelPressure
	}

	result, err := engine.RunAt(point)
	if err != nil {
		return nil, err
	}

	return &models.SweepResult{
		Sweep:     def.Name,
		Parameter: def.Parameter,
		Value:     value,
		Point:     point,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}, nil
}
