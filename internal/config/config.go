package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the tool
type Config struct {
	DBPath        string
	BatchSize     int
	BatchTimeout  int // seconds
	WatchInterval int // seconds, sweep refresh period in watch mode
	Engine        EngineConfig
	Ambient       AmbientConfig
	Sweep         SweepConfig
	Plots         PlotConfig
	Log           LogConfig
}

// EngineConfig holds the baseline cycle parameters
type EngineConfig struct {
	MassFlow             float64 // kg/s
	PressureRatio        float64
	CompressorEfficiency float64
	TurbineEfficiency    float64
	FuelAirRatio         float64
}

// AmbientConfig holds the default operating point
type AmbientConfig struct {
	Temperature float64 // K
	Pressure    float64 // Pa
}

// SweepConfig holds the sensitivity sweep ranges
type SweepConfig struct {
	Temperature   RangeConfig
	PressureRatio RangeConfig
	Workers       int
}

// RangeConfig is an evenly spaced parameter range
type RangeConfig struct {
	Min    float64
	Max    float64
	Points int
}

// PlotConfig holds plot output settings
type PlotConfig struct {
	Dir string
	DPI int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults (Phase 2 baseline engine, original sweep ranges)
	v.SetDefault("db_path", "turbocycle.db")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("watch_interval", 300)
	v.SetDefault("engine.mass_flow", 50.0)
	v.SetDefault("engine.pressure_ratio", 18.0)
	v.SetDefault("engine.compressor_efficiency", 0.88)
	v.SetDefault("engine.turbine_efficiency", 0.90)
	v.SetDefault("engine.fuel_air_ratio", 0.020)
	v.SetDefault("ambient.temperature", 288.15)
	v.SetDefault("ambient.pressure", 101325.0)
	v.SetDefault("sweep.temperature.min", 230.0)
	v.SetDefault("sweep.temperature.max", 310.0)
	v.SetDefault("sweep.temperature.points", 20)
	v.SetDefault("sweep.pressure_ratio.min", 10.0)
	v.SetDefault("sweep.pressure_ratio.max", 40.0)
	v.SetDefault("sweep.pressure_ratio.points", 20)
	v.SetDefault("sweep.workers", 4)
	v.SetDefault("plots.dir", "outputs/plots")
	v.SetDefault("plots.dpi", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Set config file name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Set config file search paths
	v.AddConfigPath("/etc/turbocycle")
	v.AddConfigPath(".")

	// Check for config file path from environment variable
	if configPath := os.Getenv("TURBOCYCLE_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	// Set environment variable prefix
	v.SetEnvPrefix("TURBOCYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		DBPath:        v.GetString("db_path"),
		BatchSize:     v.GetInt("batch_size"),
		BatchTimeout:  v.GetInt("batch_timeout"),
		WatchInterval: v.GetInt("watch_interval"),
		Engine: EngineConfig{
			MassFlow:             v.GetFloat64("engine.mass_flow"),
			PressureRatio:        v.GetFloat64("engine.pressure_ratio"),
			CompressorEfficiency: v.GetFloat64("engine.compressor_efficiency"),
			TurbineEfficiency:    v.GetFloat64("engine.turbine_efficiency"),
			FuelAirRatio:         v.GetFloat64("engine.fuel_air_ratio"),
		},
		Ambient: AmbientConfig{
			Temperature: v.GetFloat64("ambient.temperature"),
			Pressure:    v.GetFloat64("ambient.pressure"),
		},
		Sweep: SweepConfig{
			Temperature: RangeConfig{
				Min:    v.GetFloat64("sweep.temperature.min"),
				Max:    v.GetFloat64("sweep.temperature.max"),
				Points: v.GetInt("sweep.temperature.points"),
			},
			PressureRatio: RangeConfig{
				Min:    v.GetFloat64("sweep.pressure_ratio.min"),
				Max:    v.GetFloat64("sweep.pressure_ratio.max"),
				Points: v.GetInt("sweep.pressure_ratio.points"),
			},
			Workers: v.GetInt("sweep.workers"),
		},
		Plots: PlotConfig{
			Dir: v.GetString("plots.dir"),
			DPI: v.GetInt("plots.dpi"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	if cfg.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be greater than 0")
	}

	if cfg.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be greater than 0")
	}

	if cfg.Engine.MassFlow <= 0 {
		return fmt.Errorf("engine.mass_flow must be greater than 0")
	}

	if cfg.Engine.PressureRatio < 1 {
		return fmt.Errorf("engine.pressure_ratio must be at least 1")
	}

	if cfg.Engine.CompressorEfficiency <= 0 || cfg.Engine.CompressorEfficiency > 1 {
		return fmt.Errorf("engine.compressor_efficiency must be in (0, 1]")
	}

	if cfg.Engine.TurbineEfficiency <= 0 || cfg.Engine.TurbineEfficiency > 1 {
		return fmt.Errorf("engine.turbine_efficiency must be in (0, 1]")
	}

	if cfg.Engine.FuelAirRatio < 0 {
		return fmt.Errorf("engine.fuel_air_ratio must not be negative")
	}

	if cfg.Ambient.Temperature <= 0 || cfg.Ambient.Pressure <= 0 {
		return fmt.Errorf("ambient temperature and pressure must be greater than 0")
	}

	ranges := map[string]RangeConfig{
		"sweep.temperature":    cfg.Sweep.Temperature,
		"sweep.pressure_ratio": cfg.Sweep.PressureRatio,
	}
	for name, r := range ranges {
		if r.Points < 2 {
			return fmt.Errorf("%s.points must be at least 2", name)
		}
		if r.Min >= r.Max {
			return fmt.Errorf("%s range must have min < max", name)
		}
	}

	if cfg.Sweep.Workers <= 0 {
		return fmt.Errorf("sweep.workers must be greater than 0")
	}

	if cfg.Plots.Dir == "" {
		return fmt.Errorf("plots.dir is required")
	}

	if cfg.Plots.DPI <= 0 {
		return fmt.Errorf("plots.dpi must be greater than 0")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
