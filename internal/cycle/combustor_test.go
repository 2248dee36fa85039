package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombustor_Baseline(t *testing.T) {
	// Compressor exit conditions, 2% fuel-air ratio.
	tOut, pOut, err := Combustor(500.0, 1.8e6, 0.02)
	require.NoError(t, err)

	// ΔT = 0.99 * 0.02 * 43e6 / 1005 ≈ 847.16 K
	assert.InDelta(t, 1347.16, tOut, 0.05)
	assert.InDelta(t, 1.746e6, pOut, 1.0)

	// Exit temperature in the typical modern combustor band.
	assert.Greater(t, tOut, 1300.0)
	assert.Less(t, tOut, 1800.0)
}

func TestCombustorWithLosses_NoLossNoFuel(t *testing.T) {
	tOut, pOut, err := CombustorWithLosses(500.0, 1.8e6, 0.0, 0.99, 0.0)
	require.NoError(t, err)

	assert.InDelta(t, 500.0, tOut, 1e-9)
	assert.InDelta(t, 1.8e6, pOut, 1e-9)
}

func TestCombustor_InvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		tIn, pIn, f float64
		etaB, loss  float64
	}{
		{"negative fuel-air ratio", 500, 1.8e6, -0.01, 0.99, 0.03},
		{"zero inlet temperature", 0, 1.8e6, 0.02, 0.99, 0.03},
		{"zero combustion efficiency", 500, 1.8e6, 0.02, 0, 0.03},
		{"loss factor of 1", 500, 1.8e6, 0.02, 0.99, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CombustorWithLosses(tt.tIn, tt.pIn, tt.f, tt.etaB, tt.loss)
			assert.Error(t, err)
		})
	}
}

func TestHeatRelease(t *testing.T) {
	// 2% of 50 kg/s is 1 kg/s of fuel at 43 MJ/kg.
	assert.InDelta(t, 43.0e6, HeatRelease(0.02, 50.0), 1.0)
}

func TestFlameTemperature(t *testing.T) {
	flame, err := FlameTemperature(500.0, 0.02, 0.99)
	require.NoError(t, err)

	// Same ΔT as the combustor, no pressure loss involved.
	assert.InDelta(t, 1347.16, flame, 0.05)
}
