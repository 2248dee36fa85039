package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"turbocycle/internal/cycle"
	"turbocycle/internal/database"
	"turbocycle/internal/models"
)

var (
	runTemperature float64
	runPressure    float64
	runAltitude    float64
	runCondition   string
	runJSON        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate the cycle at a single operating point",
	Long: `Run evaluates the baseline engine at one ambient condition and prints
the station states and performance figures. The operating point comes from
configuration, a named flight condition, an ISA altitude, or explicit
temperature/pressure flags (in increasing precedence).`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Float64Var(&runTemperature, "temperature", 0, "Ambient temperature [K]")
	runCmd.Flags().Float64Var(&runPressure, "pressure", 0, "Ambient pressure [Pa]")
	runCmd.Flags().Float64Var(&runAltitude, "altitude", 0, "ISA altitude [m]")
	runCmd.Flags().StringVar(&runCondition, "condition", "", "Named flight condition from the database")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the result as JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	point, err := resolveOperatingPoint(cmd)
	if err != nil {
		return err
	}

	engine := engineFromConfig(cfg)
	result, err := engine.RunAt(point)
	if err != nil {
		return err
	}

	if runJSON {
		out := struct {
			Point  models.OperatingPoint `json:"operating_point"`
			Result *models.CycleResult   `json:"result"`
		}{point, result}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printResult(point, result)
	return nil
}

// resolveOperatingPoint applies the flag precedence for the ambient state
func resolveOperatingPoint(cmd *cobra.Command) (models.OperatingPoint, error) {
	point := models.OperatingPoint{
		AmbientTemperature: cfg.Ambient.Temperature,
		AmbientPressure:    cfg.Ambient.Pressure,
	}

	if runCondition != "" {
		db, err := database.New(cfg.DBPath)
		if err != nil {
			return point, err
		}
		defer db.Close()

		fc, err := db.Conditions().Get(runCondition)
		if err != nil {
			return point, err
		}
		point = fc.OperatingPoint()
	}

	if cmd.Flags().Changed("altitude") {
		temp, press, err := cycle.Atmosphere(runAltitude)
		if err != nil {
			return point, err
		}
		point.AmbientTemperature = temp
		point.AmbientPressure = press
	}

	if cmd.Flags().Changed("temperature") {
		point.AmbientTemperature = runTemperature
	}
	if cmd.Flags().Changed("pressure") {
		point.AmbientPressure = runPressure
	}

	return point, nil
}

func printResult(point models.OperatingPoint, res *models.CycleResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Ambient\tT = %.2f K\tP = %.0f Pa\n", point.AmbientTemperature, point.AmbientPressure)
	fmt.Fprintf(w, "Compressor exit\tT2 = %.2f K\tP2 = %.0f Pa\n", res.T2, res.P2)
	fmt.Fprintf(w, "Combustor exit\tT3 = %.2f K\tP3 = %.0f Pa\n", res.T3, res.P3)
	fmt.Fprintf(w, "Turbine exit\tT4 = %.2f K\tP4 = %.0f Pa\n", res.T4, res.P4)
	fmt.Fprintf(w, "Nozzle exit\tT5 = %.2f K\tP5 = %.0f Pa\n", res.T5, res.P5)
	fmt.Fprintln(w)

	regime := "subsonic"
	if res.Choked {
		regime = "choked"
	}
	fmt.Fprintf(w, "Exit velocity\t%.1f m/s\t(M = %.3f, %s)\n", res.ExitVelocity, res.ExitMach, regime)
	fmt.Fprintf(w, "Thrust\t%.0f N\t(%.1f kN)\n", res.Thrust, res.Thrust/1000)
	fmt.Fprintf(w, "Specific impulse\t%.1f s\t\n", res.SpecificImpulse)
	fmt.Fprintf(w, "Fuel flow\t%.3f kg/s\t\n", res.FuelFlow)
	fmt.Fprintf(w, "Compressor work\t%.1f kJ/kg\t\n", res.CompressorWork/1000)

	w.Flush()
}
