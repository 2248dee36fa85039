package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalPressureRatio(t *testing.T) {
	assert.InDelta(t, 1.893, CriticalPressureRatio, 0.001)
}

func TestNozzle_SubsonicExpansion(t *testing.T) {
	state, err := Nozzle(900.0, 150000.0, 101325.0)
	require.NoError(t, err)

	assert.False(t, state.Choked)
	assert.InDelta(t, 804.57, state.Temperature, 0.05)
	assert.InDelta(t, 101325.0, state.Pressure, 1e-6)
	assert.InDelta(t, 437.97, state.Velocity, 0.1)
	assert.InDelta(t, 0.770, state.Mach, 0.001)
	assert.Less(t, state.Mach, 1.0)
}

func TestNozzle_ChokedFlow(t *testing.T) {
	state, err := Nozzle(1200.0, 400000.0, 101325.0)
	require.NoError(t, err)

	assert.True(t, state.Choked)
	assert.InDelta(t, 1000.0, state.Temperature, 1e-6)
	assert.InDelta(t, 211313.0, state.Pressure, 1.0)
	assert.InDelta(t, 633.88, state.Velocity, 0.05)
	assert.Equal(t, 1.0, state.Mach)

	// Choked exit pressure stays above ambient (underexpanded).
	assert.Greater(t, state.Pressure, 101325.0)
}

func TestNozzle_NoPressureRatio(t *testing.T) {
	// Inlet already at ambient: no expansion, zero exit velocity.
	state, err := Nozzle(900.0, 101325.0, 101325.0)
	require.NoError(t, err)

	assert.False(t, state.Choked)
	assert.InDelta(t, 900.0, state.Temperature, 1e-9)
	assert.InDelta(t, 0.0, state.Velocity, 1e-9)
}

func TestNozzle_InvalidInputs(t *testing.T) {
	_, err := Nozzle(-1, 150000, 101325)
	assert.Error(t, err)

	_, err = Nozzle(900, 150000, 0)
	assert.Error(t, err)
}

func TestChoked(t *testing.T) {
	assert.False(t, Choked(150000, 101325))
	assert.True(t, Choked(400000, 101325))
}

func TestThrustAndIsp(t *testing.T) {
	thrust := SimpleThrust(50.0, 600.0)
	assert.InDelta(t, 30000.0, thrust, 1e-9)

	// Full thrust collapses to the momentum term at perfect expansion and
	// static inlet.
	full := FullThrust(50.0, 600.0, 0.0, 101325.0, 101325.0, 0.5)
	assert.InDelta(t, thrust, full, 1e-9)

	isp := SpecificImpulse(thrust, 1.0)
	assert.InDelta(t, 30000.0/9.81, isp, 1e-9)
}
