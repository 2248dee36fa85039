package cycle

import (
	"errors"
	"fmt"
	"math"
)

// Gas properties for the hot section (combustion products).
const (
	GammaHot = 1.33   // ratio of specific heats [-]
	CpHot    = 1005.0 // specific heat, approximate [J/(kg·K)]

	// MinTurbineExitTemperature is the lowest exit temperature the model
	// accepts. An exit state below this means the requested shaft work
	// cannot be supplied at the given inlet state.
	MinTurbineExitTemperature = 300.0 // K
)

// ErrTurbineOverdraw reports a work demand the turbine cannot satisfy
// without expanding below the physical temperature limit.
var ErrTurbineOverdraw = errors.New("turbine work demand exceeds available enthalpy")

// Turbine models the work-extraction turbine that drives the compressor.
// The temperature drop follows from the required shaft work and the
// isentropic efficiency, the pressure from the isentropic expansion
// relation:
//
//	ΔT_ideal = W_required / cp
//	ΔT       = ΔT_ideal / η_t
//	P_out    = P_in * (T_out/T_in)^(γ/(γ-1))
//
// Returns ErrTurbineOverdraw when the exit temperature would fall below
// MinTurbineExitTemperature.
func Turbine(tIn, pIn, workRequired, efficiency float64) (tOut, pOut float64, err error) {
	if tIn <= 0 || pIn <= 0 {
		return 0, 0, fmt.Errorf("turbine: inlet state must be positive (T=%g K, P=%g Pa)", tIn, pIn)
	}
	if workRequired < 0 {
		return 0, 0, fmt.Errorf("turbine: work requirement %g below 0", workRequired)
	}
	if efficiency <= 0 || efficiency > 1 {
		return 0, 0, fmt.Errorf("turbine: efficiency %g outside (0, 1]", efficiency)
	}

	deltaTIsentropic := workRequired / CpHot
	deltaT := deltaTIsentropic / efficiency

	tOut = tIn - deltaT
	if tOut < MinTurbineExitTemperature {
		return 0, 0, fmt.Errorf("turbine: exit temperature %.1f K below %.0f K limit: %w",
			tOut, MinTurbineExitTemperature, ErrTurbineOverdraw)
	}

	exponent := GammaHot / (GammaHot - 1.0)
	pOut = pIn * math.Pow(tOut/tIn, exponent)

	return tOut, pOut, nil
}

// TurbinePower returns the power extracted by the turbine [W], or the
// specific work [J/kg] when massFlow is 1.
func TurbinePower(tIn, tOut, massFlow float64) float64 {
	return massFlow * CpHot * (tIn - tOut)
}

// ExpansionRatio returns the turbine expansion ratio P_in/P_out.
func ExpansionRatio(pIn, pOut float64) float64 {
	return pIn / pOut
}

// EstimateTurbineStages estimates the stage count needed for the given
// expansion ratio, assuming a maximum expansion ratio per stage.
func EstimateTurbineStages(expansionRatio, maxStageLoading float64) int {
	return int(math.Ceil(math.Log(expansionRatio) / math.Log(maxStageLoading)))
}
