package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turbocycle/internal/models"
)

func TestEngine_SeaLevelBaseline(t *testing.T) {
	engine := NewEngine()

	res, err := engine.Run(288.15, 101325.0)
	require.NoError(t, err)
	require.NotNil(t, res)

	// Station states
	assert.InDelta(t, 708.51, res.T2, 0.05)
	assert.InDelta(t, 1823850.0, res.P2, 1.0)
	assert.InDelta(t, 1555.67, res.T3, 0.05)
	assert.InDelta(t, 1769134.5, res.P3, 1.0)
	assert.InDelta(t, 1088.61, res.T4, 0.05)
	assert.InDelta(t, 419641.0, res.P4, 50.0)
	assert.InDelta(t, 907.17, res.T5, 0.05)

	// Baseline PR 18 leaves enough turbine exit pressure to choke the nozzle.
	assert.True(t, res.Choked)
	assert.Equal(t, 1.0, res.ExitMach)
	assert.InDelta(t, 603.74, res.ExitVelocity, 0.1)

	// Performance
	assert.InDelta(t, 30187.0, res.Thrust, 10.0)
	assert.InDelta(t, 3077.2, res.SpecificImpulse, 1.0)
	assert.InDelta(t, 1.0, res.FuelFlow, 1e-9)
	assert.InDelta(t, 422458.0, res.CompressorWork, 50.0)
}

func TestEngine_StationOrdering(t *testing.T) {
	res, err := NewEngine().Run(288.15, 101325.0)
	require.NoError(t, err)

	// Temperatures rise through compression and combustion, fall through
	// expansion; pressures fall monotonically downstream of the compressor.
	assert.Greater(t, res.T2, 288.15)
	assert.Greater(t, res.T3, res.T2)
	assert.Less(t, res.T4, res.T3)
	assert.Less(t, res.T5, res.T4)
	assert.Less(t, res.P3, res.P2)
	assert.Less(t, res.P4, res.P3)
	assert.Less(t, res.P5, res.P4)
}

func TestEngine_AmbientTemperatureTrend(t *testing.T) {
	engine := NewEngine()

	cold, err := engine.Run(230.0, 101325.0)
	require.NoError(t, err)
	hot, err := engine.Run(310.0, 101325.0)
	require.NoError(t, err)

	// Across the sweep range the nozzle stays choked, so the exit velocity
	// scales with √T5 and thrust rises with ambient temperature at fixed
	// fuel-air ratio.
	assert.True(t, cold.Choked)
	assert.True(t, hot.Choked)
	assert.Greater(t, hot.Thrust, cold.Thrust)
	assert.Greater(t, hot.SpecificImpulse, cold.SpecificImpulse)
	assert.InDelta(t, 29503.7, cold.Thrust, 10.0)
	assert.InDelta(t, 30439.8, hot.Thrust, 10.0)
}

func TestEngine_RunAt(t *testing.T) {
	engine := NewEngine()
	point := models.OperatingPoint{AmbientTemperature: 288.15, AmbientPressure: 101325.0}

	byPoint, err := engine.RunAt(point)
	require.NoError(t, err)
	direct, err := engine.Run(288.15, 101325.0)
	require.NoError(t, err)

	assert.Equal(t, direct, byPoint)
}

func TestEngine_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Engine)
	}{
		{"zero mass flow", func(e *Engine) { e.MassFlow = 0 }},
		{"pressure ratio below 1", func(e *Engine) { e.PressureRatio = 0.9 }},
		{"compressor efficiency above 1", func(e *Engine) { e.CompressorEfficiency = 1.2 }},
		{"zero turbine efficiency", func(e *Engine) { e.TurbineEfficiency = 0 }},
		{"negative fuel-air ratio", func(e *Engine) { e.FuelAirRatio = -0.01 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			tt.mutate(engine)
			_, err := engine.Run(288.15, 101325.0)
			assert.Error(t, err)
		})
	}
}
