package cycle

import (
	"fmt"
	"math"
)

// Gas properties for the cold section (air).
const (
	GammaAir = 1.4    // ratio of specific heats [-]
	CpAir    = 1005.0 // specific heat at constant pressure [J/(kg·K)]
	RAir     = 287.0  // specific gas constant [J/(kg·K)]
)

// Compressor models an axial/centrifugal compressor with isentropic
// efficiency. The outlet pressure follows directly from the pressure ratio;
// the outlet temperature is the isentropic rise divided by the efficiency:
//
//	T_out,s = T_in * PR^((γ-1)/γ)
//	T_out   = T_in + (T_out,s - T_in) / η_c
//
// Typical efficiencies for modern compressors are 0.85-0.92.
func Compressor(tIn, pIn, pressureRatio, efficiency float64) (tOut, pOut float64, err error) {
	if tIn <= 0 || pIn <= 0 {
		return 0, 0, fmt.Errorf("compressor: inlet state must be positive (T=%g K, P=%g Pa)", tIn, pIn)
	}
	if pressureRatio < 1 {
		return 0, 0, fmt.Errorf("compressor: pressure ratio %g below 1", pressureRatio)
	}
	if efficiency <= 0 || efficiency > 1 {
		return 0, 0, fmt.Errorf("compressor: efficiency %g outside (0, 1]", efficiency)
	}

	pOut = pIn * pressureRatio

	exponent := (GammaAir - 1.0) / GammaAir
	tOutIsentropic := tIn * math.Pow(pressureRatio, exponent)

	deltaT := (tOutIsentropic - tIn) / efficiency
	tOut = tIn + deltaT

	return tOut, pOut, nil
}

// CompressorWork returns the power absorbed by the compressor [W], or the
// specific work [J/kg] when massFlow is 1.
func CompressorWork(tIn, tOut, massFlow float64) float64 {
	return massFlow * CpAir * (tOut - tIn)
}

// StageTemperatureRise estimates the average temperature rise per compressor
// stage [K].
func StageTemperatureRise(tIn, tOut float64, stages int) float64 {
	return (tOut - tIn) / float64(stages)
}
