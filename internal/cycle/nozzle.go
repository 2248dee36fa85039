package cycle

import (
	"fmt"
	"math"
)

// StandardGravity is the reference gravitational acceleration used for
// specific impulse [m/s²].
const StandardGravity = 9.81

// CriticalPressureRatio is the pressure ratio above which a converging
// nozzle chokes: ((γ+1)/2)^(γ/(γ-1)), ≈1.893 for γ=1.4.
var CriticalPressureRatio = math.Pow((GammaAir+1.0)/2.0, GammaAir/(GammaAir-1.0))

// NozzleState is the exit state of the nozzle.
type NozzleState struct {
	Temperature float64 // K
	Pressure    float64 // Pa
	Velocity    float64 // m/s
	Mach        float64 // -
	Choked      bool
}

// Nozzle models a converging nozzle. Above the critical pressure ratio the
// flow chokes and the exit is held at the sonic condition:
//
//	T* = T_in * 2/(γ+1)
//	P* = P_in * (2/(γ+1))^(γ/(γ-1))
//	V* = √(γ R T*)
//
// Below it the flow expands isentropically to ambient pressure and the exit
// velocity comes from the energy equation V = √(2 cp (T_in - T_exit)).
func Nozzle(tIn, pIn, pAmbient float64) (NozzleState, error) {
	if tIn <= 0 || pIn <= 0 {
		return NozzleState{}, fmt.Errorf("nozzle: inlet state must be positive (T=%g K, P=%g Pa)", tIn, pIn)
	}
	if pAmbient <= 0 {
		return NozzleState{}, fmt.Errorf("nozzle: ambient pressure %g must be positive", pAmbient)
	}

	if Choked(pIn, pAmbient) {
		tExit := tIn * (2.0 / (GammaAir + 1.0))
		pExit := pIn * math.Pow(2.0/(GammaAir+1.0), GammaAir/(GammaAir-1.0))
		aStar := math.Sqrt(GammaAir * RAir * tExit)
		return NozzleState{
			Temperature: tExit,
			Pressure:    pExit,
			Velocity:    aStar,
			Mach:        1.0,
			Choked:      true,
		}, nil
	}

	// Subsonic: fully expanded to ambient.
	pExit := pAmbient
	exponent := (GammaAir - 1.0) / GammaAir
	tExit := tIn * math.Pow(pExit/pIn, exponent)

	deltaH := CpAir * (tIn - tExit)
	vExit := math.Sqrt(math.Max(2.0*deltaH, 0.0))

	aExit := math.Sqrt(GammaAir * RAir * tExit)
	return NozzleState{
		Temperature: tExit,
		Pressure:    pExit,
		Velocity:    vExit,
		Mach:        vExit / aExit,
	}, nil
}

// Choked reports whether the nozzle operates in the choked flow regime.
func Choked(pIn, pAmbient float64) bool {
	return pIn/pAmbient >= CriticalPressureRatio
}

// SimpleThrust is the momentum thrust F = ṁ·V_exit, assuming static inlet
// and perfect expansion.
func SimpleThrust(massFlow, vExit float64) float64 {
	return massFlow * vExit
}

// FullThrust includes the inlet momentum and pressure terms:
//
//	F = ṁ(V_exit - V_inlet) + (P_exit - P_ambient)·A_exit
func FullThrust(massFlow, vExit, vInlet, pExit, pAmbient, aExit float64) float64 {
	momentum := massFlow * (vExit - vInlet)
	pressure := (pExit - pAmbient) * aExit
	return momentum + pressure
}

// SpecificImpulse returns Isp [s] for the given thrust and fuel flow.
func SpecificImpulse(thrust, fuelFlow float64) float64 {
	return thrust / (fuelFlow * StandardGravity)
}
