// Package sweep defines parameter sensitivity sweeps over the cycle model
// and a concurrent runner that evaluates them.
package sweep

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"turbocycle/internal/models"
)

// Swept parameter names. These also key the stored results and the plot
// selection.
const (
	ParamAmbientTemperature = "ambient_temperature"
	ParamPressureRatio      = "pressure_ratio"
)

// Definition is one parameter sweep: a named, evenly spaced range of a
// single cycle parameter evaluated against a fixed ambient baseline.
type Definition struct {
	Name      string
	Parameter string
	Min       float64
	Max       float64
	Points    int
	Ambient   models.OperatingPoint
}

// TemperatureDefinition sweeps ambient temperature at fixed pressure.
func TemperatureDefinition(min, max float64, points int, pressure float64) Definition {
	return Definition{
		Name:      "temperature",
		Parameter: ParamAmbientTemperature,
		Min:       min,
		Max:       max,
		Points:    points,
		Ambient:   models.OperatingPoint{AmbientPressure: pressure},
	}
}

// PressureRatioDefinition sweeps the compressor pressure ratio at a fixed
// ambient condition.
func PressureRatioDefinition(min, max float64, points int, ambient models.OperatingPoint) Definition {
	return Definition{
		Name:      "pressure_ratio",
		Parameter: ParamPressureRatio,
		Min:       min,
		Max:       max,
		Points:    points,
		Ambient:   ambient,
	}
}

// Validate checks the sweep definition.
func (d Definition) Validate() error {
	switch d.Parameter {
	case ParamAmbientTemperature, ParamPressureRatio:
	default:
		return fmt.Errorf("sweep %q: unknown parameter %q", d.Name, d.Parameter)
	}
	if d.Points < 2 {
		return fmt.Errorf("sweep %q: needs at least 2 points, got %d", d.Name, d.Points)
	}
	if d.Min >= d.Max {
		return fmt.Errorf("sweep %q: range [%g, %g] must have min < max", d.Name, d.Min, d.Max)
	}
	return nil
}

// Values returns the evenly spaced parameter values of the sweep.
func (d Definition) Values() []float64 {
	return floats.Span(make([]float64, d.Points), d.Min, d.Max)
}

// NewBatchID returns a batch identifier for one sweep invocation. Wall
// clock nanoseconds are unique enough for successive runs and keep batches
// naturally ordered.
func NewBatchID() int64 {
	return time.Now().UnixNano()
}
