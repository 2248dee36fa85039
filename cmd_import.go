package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"turbocycle/internal/database"
)

var importBatchSize int

var importCmd = &cobra.Command{
	Use:   "import <csv-file>...",
	Short: "Import named flight conditions from CSV",
	Long: `Import loads flight conditions from CSV files into the database.
Expected columns: name, altitude_m, temperature_k, pressure_pa. Rows that
give only an altitude get their ambient state from the ISA atmosphere.
Conditions are addressable by name via "turbocycle run --condition".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", 500, "Records per insert transaction")
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Conditions().LoadFromCSV(args, importBatchSize); err != nil {
		return err
	}

	slog.Info("Flight conditions imported", "files", args)
	return nil
}
