package cycle

import "fmt"

// Combustor constants.
const (
	LHVJetA = 43.0e6 // lower heating value of Jet-A [J/kg]

	DefaultCombustionEfficiency = 0.99 // fraction of fuel energy released [-]
	DefaultPressureLossFactor   = 0.03 // fractional total pressure drop [-]
)

// Combustor models constant-pressure heat addition with the default
// combustion efficiency and pressure loss.
func Combustor(tIn, pIn, fuelAirRatio float64) (tOut, pOut float64, err error) {
	return CombustorWithLosses(tIn, pIn, fuelAirRatio, DefaultCombustionEfficiency, DefaultPressureLossFactor)
}

// CombustorWithLosses models heat addition with explicit combustion
// efficiency and pressure loss factor:
//
//	ΔT    = η_b * f * LHV / cp
//	P_out = P_in * (1 - ΔP/P)
//
// The pressure drop lumps wall friction, fuel-injection momentum effects and
// Rayleigh-flow losses; 2-5% is typical.
func CombustorWithLosses(tIn, pIn, fuelAirRatio, combustionEfficiency, pressureLossFactor float64) (tOut, pOut float64, err error) {
	if tIn <= 0 || pIn <= 0 {
		return 0, 0, fmt.Errorf("combustor: inlet state must be positive (T=%g K, P=%g Pa)", tIn, pIn)
	}
	if fuelAirRatio < 0 {
		return 0, 0, fmt.Errorf("combustor: fuel-air ratio %g below 0", fuelAirRatio)
	}
	if combustionEfficiency <= 0 || combustionEfficiency > 1 {
		return 0, 0, fmt.Errorf("combustor: combustion efficiency %g outside (0, 1]", combustionEfficiency)
	}
	if pressureLossFactor < 0 || pressureLossFactor >= 1 {
		return 0, 0, fmt.Errorf("combustor: pressure loss factor %g outside [0, 1)", pressureLossFactor)
	}

	deltaT := combustionEfficiency * fuelAirRatio * LHVJetA / CpAir
	tOut = tIn + deltaT

	pOut = pIn * (1.0 - pressureLossFactor)

	return tOut, pOut, nil
}

// HeatRelease returns the combustor heat release rate [W] for the given
// fuel-air ratio and air mass flow.
func HeatRelease(fuelAirRatio, massFlow float64) float64 {
	fuelFlow := massFlow * fuelAirRatio
	return fuelFlow * LHVJetA
}

// FlameTemperature approximates the adiabatic flame temperature [K] by
// running the combustor without pressure loss.
func FlameTemperature(tIn, fuelAirRatio, efficiency float64) (float64, error) {
	tOut, _, err := CombustorWithLosses(tIn, 101325.0, fuelAirRatio, efficiency, 0.0)
	return tOut, err
}
