// Package cycle implements the 0-D baseline turbofan thermodynamic model:
// four lumped component models (compressor, combustor, turbine, nozzle), an
// integrated engine that chains them with the turbine work balance, and the
// ISA atmosphere for ambient conditions by altitude.
package cycle

import (
	"fmt"

	"turbocycle/internal/models"
)

// Engine is the 0-D integrated engine model. Fields are the cycle
// parameters; ambient conditions come in per Run call.
type Engine struct {
	MassFlow             float64 // core air flow [kg/s]
	PressureRatio        float64 // overall compressor pressure ratio [-]
	CompressorEfficiency float64 // isentropic [-]
	TurbineEfficiency    float64 // isentropic [-]
	FuelAirRatio         float64 // fuel-to-air mass ratio [-]
}

// NewEngine returns an engine with the Phase 2 baseline parameters.
func NewEngine() *Engine {
	return &Engine{
		MassFlow:             50.0,
		PressureRatio:        18.0,
		CompressorEfficiency: 0.88,
		TurbineEfficiency:    0.90,
		FuelAirRatio:         0.020,
	}
}

// Validate checks the cycle parameters before a run.
func (e *Engine) Validate() error {
	if e.MassFlow <= 0 {
		return fmt.Errorf("engine: mass flow %g must be positive", e.MassFlow)
	}
	if e.PressureRatio < 1 {
		return fmt.Errorf("engine: pressure ratio %g below 1", e.PressureRatio)
	}
	if e.CompressorEfficiency <= 0 || e.CompressorEfficiency > 1 {
		return fmt.Errorf("engine: compressor efficiency %g outside (0, 1]", e.CompressorEfficiency)
	}
	if e.TurbineEfficiency <= 0 || e.TurbineEfficiency > 1 {
		return fmt.Errorf("engine: turbine efficiency %g outside (0, 1]", e.TurbineEfficiency)
	}
	if e.FuelAirRatio < 0 {
		return fmt.Errorf("engine: fuel-air ratio %g below 0", e.FuelAirRatio)
	}
	return nil
}

// Run evaluates the cycle at the given ambient condition. The turbine is
// sized to supply exactly the compressor specific work, and the nozzle
// expands the remaining enthalpy into exit velocity, thrust and Isp.
func (e *Engine) Run(tAmbient, pAmbient float64) (*models.CycleResult, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	// Compressor
	t2, p2, err := Compressor(tAmbient, pAmbient, e.PressureRatio, e.CompressorEfficiency)
	if err != nil {
		return nil, err
	}
	work := CompressorWork(tAmbient, t2, 1.0)

	// Combustor
	t3, p3, err := Combustor(t2, p2, e.FuelAirRatio)
	if err != nil {
		return nil, err
	}

	// Turbine supplies the compressor shaft work
	t4, p4, err := Turbine(t3, p3, work, e.TurbineEfficiency)
	if err != nil {
		return nil, err
	}

	// Nozzle
	exit, err := Nozzle(t4, p4, pAmbient)
	if err != nil {
		return nil, err
	}

	thrust := SimpleThrust(e.MassFlow, exit.Velocity)
	fuelFlow := e.MassFlow * e.FuelAirRatio
	isp := SpecificImpulse(thrust, fuelFlow)

	return &models.CycleResult{
		T2: t2, P2: p2,
		T3: t3, P3: p3,
		T4: t4, P4: p4,
		T5: exit.Temperature, P5: exit.Pressure,

		ExitVelocity: exit.Velocity,
		ExitMach:     exit.Mach,
		Choked:       exit.Choked,

		Thrust:          thrust,
		SpecificImpulse: isp,
		FuelFlow:        fuelFlow,
		CompressorWork:  work,
	}, nil
}

// RunAt evaluates the cycle at an operating point.
func (e *Engine) RunAt(point models.OperatingPoint) (*models.CycleResult, error) {
	return e.Run(point.AmbientTemperature, point.AmbientPressure)
}
