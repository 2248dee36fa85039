package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no config file is
// picked up and defaults apply.
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "turbocycle.db", cfg.DBPath)
	assert.Equal(t, 50.0, cfg.Engine.MassFlow)
	assert.Equal(t, 18.0, cfg.Engine.PressureRatio)
	assert.Equal(t, 0.88, cfg.Engine.CompressorEfficiency)
	assert.Equal(t, 0.90, cfg.Engine.TurbineEfficiency)
	assert.Equal(t, 0.020, cfg.Engine.FuelAirRatio)
	assert.Equal(t, 288.15, cfg.Ambient.Temperature)
	assert.Equal(t, 20, cfg.Sweep.Temperature.Points)
	assert.Equal(t, 230.0, cfg.Sweep.Temperature.Min)
	assert.Equal(t, 40.0, cfg.Sweep.PressureRatio.Max)
	assert.Equal(t, "outputs/plots", cfg.Plots.Dir)
	assert.Equal(t, 300, cfg.Plots.DPI)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TURBOCYCLE_ENGINE_PRESSURE_RATIO", "24")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24.0, cfg.Engine.PressureRatio)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "TURBOCYCLE_LOG_LEVEL", "verbose"},
		{"bad log format", "TURBOCYCLE_LOG_FORMAT", "xml"},
		{"zero mass flow", "TURBOCYCLE_ENGINE_MASS_FLOW", "0"},
		{"efficiency above 1", "TURBOCYCLE_ENGINE_COMPRESSOR_EFFICIENCY", "1.2"},
		{"single sweep point", "TURBOCYCLE_SWEEP_TEMPERATURE_POINTS", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
