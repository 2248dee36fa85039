package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"turbocycle/internal/config"
	"turbocycle/internal/cycle"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "turbocycle",
	Short: "0-D baseline turbofan cycle model",
	Long: `turbocycle evaluates a 0-D Brayton cycle for the baseline turbofan
(compressor -> combustor -> turbine -> nozzle with turbine work balance),
runs sensitivity sweeps over ambient temperature and compressor pressure
ratio, and renders high-resolution performance plots.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			os.Setenv("TURBOCYCLE_CONFIG_PATH", cfgPath)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			// Use basic logging for config errors since the logger isn't
			// initialized yet
			basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			basicLogger.Error("Failed to load configuration", "error", err)
			return err
		}

		initLogger(cfg)
		return nil
	},
}

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// engineFromConfig builds the baseline engine from configuration
func engineFromConfig(cfg *config.Config) *cycle.Engine {
	return &cycle.Engine{
		MassFlow:             cfg.Engine.MassFlow,
		PressureRatio:        cfg.Engine.PressureRatio,
		CompressorEfficiency: cfg.Engine.CompressorEfficiency,
		TurbineEfficiency:    cfg.Engine.TurbineEfficiency,
		FuelAirRatio:         cfg.Engine.FuelAirRatio,
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (YAML)")
	rootCmd.AddCommand(runCmd, sweepCmd, plotCmd, importCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
