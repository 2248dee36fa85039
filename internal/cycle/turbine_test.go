package cycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurbine_Baseline(t *testing.T) {
	// High-pressure turbine at typical TIT supplying 215 kJ/kg.
	tOut, pOut, err := Turbine(1500.0, 1.7e6, 215000.0, 0.90)
	require.NoError(t, err)

	assert.InDelta(t, 1262.30, tOut, 0.05)
	assert.InDelta(t, 848131.0, pOut, 100.0)

	// Energy balance: the extracted specific work must cover the demand
	// (the efficiency penalty shows up as extra temperature drop).
	extracted := TurbinePower(1500.0, tOut, 1.0)
	assert.GreaterOrEqual(t, extracted, 215000.0)
}

func TestTurbine_Overdraw(t *testing.T) {
	// Demanding more work than the inlet enthalpy can supply must error
	// rather than clamp to an unphysical exit state.
	_, _, err := Turbine(800.0, 1.7e6, 600000.0, 0.90)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTurbineOverdraw))
}

func TestTurbine_ZeroWork(t *testing.T) {
	tOut, pOut, err := Turbine(1500.0, 1.7e6, 0.0, 0.90)
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, tOut, 1e-9)
	assert.InDelta(t, 1.7e6, pOut, 1e-6)
}

func TestTurbine_InvalidInputs(t *testing.T) {
	tests := []struct {
		name                string
		tIn, pIn, work, eta float64
	}{
		{"negative work", 1500, 1.7e6, -1, 0.9},
		{"zero pressure", 1500, 0, 215000, 0.9},
		{"efficiency above 1", 1500, 1.7e6, 215000, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Turbine(tt.tIn, tt.pIn, tt.work, tt.eta)
			assert.Error(t, err)
		})
	}
}

func TestExpansionRatio(t *testing.T) {
	assert.InDelta(t, 2.0, ExpansionRatio(1.7e6, 0.85e6), 1e-9)
}

func TestEstimateTurbineStages(t *testing.T) {
	assert.Equal(t, 1, EstimateTurbineStages(4.0, 4.0))
	assert.Equal(t, 2, EstimateTurbineStages(5.0, 4.0))
	assert.Equal(t, 3, EstimateTurbineStages(40.0, 4.0))
}
