package cycle

import (
	"fmt"
	"math"
)

// International Standard Atmosphere constants.
const (
	SeaLevelTemperature = 288.15   // K
	SeaLevelPressure    = 101325.0 // Pa

	isaLapseRate   = 0.0065  // K/m, troposphere
	isaTropopause  = 11000.0 // m
	isaCeiling     = 20000.0 // m, model validity limit
	isaGravity     = 9.80665 // m/s²
	isaGasConstant = 287.05  // J/(kg·K)
	tropopauseTemp = SeaLevelTemperature - isaLapseRate*isaTropopause // 216.65 K
)

// Atmosphere returns the ISA static temperature [K] and pressure [Pa] at the
// given geopotential altitude [m]. Valid from sea level to 20 km: linear
// 6.5 K/km lapse up to the tropopause, isothermal above.
func Atmosphere(altitude float64) (temperature, pressure float64, err error) {
	if altitude < 0 || altitude > isaCeiling {
		return 0, 0, fmt.Errorf("atmosphere: altitude %g m outside [0, %g] m", altitude, isaCeiling)
	}

	if altitude <= isaTropopause {
		temperature = SeaLevelTemperature - isaLapseRate*altitude
		pressure = SeaLevelPressure * math.Pow(temperature/SeaLevelTemperature,
			isaGravity/(isaLapseRate*isaGasConstant))
		return temperature, pressure, nil
	}

	// Lower stratosphere: isothermal, exponential pressure decay.
	pTropopause := SeaLevelPressure * math.Pow(tropopauseTemp/SeaLevelTemperature,
		isaGravity/(isaLapseRate*isaGasConstant))
	temperature = tropopauseTemp
	pressure = pTropopause * math.Exp(-isaGravity*(altitude-isaTropopause)/(isaGasConstant*tropopauseTemp))
	return temperature, pressure, nil
}
