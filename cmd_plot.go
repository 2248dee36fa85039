package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"turbocycle/internal/database"
	"turbocycle/internal/plots"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render performance plots from the latest stored sweep results",
	RunE:  runPlot,
}

func runPlot(cmd *cobra.Command, args []string) error {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := db.Results()
	renderer := plots.NewRenderer(cfg.Plots.Dir, cfg.Plots.DPI)

	rendered := 0
	for _, def := range sweepDefinitions(cfg) {
		batch, err := repo.LatestBatch(def.Name)
		if errors.Is(err, database.ErrNoResults) {
			slog.Warn("No stored results for sweep, skipping", "sweep", def.Name)
			continue
		}
		if err != nil {
			return err
		}

		results, err := repo.ListBySweep(def.Name, batch)
		if err != nil {
			return err
		}

		paths, err := renderer.RenderSweep(results)
		if err != nil {
			return err
		}
		rendered += len(paths)
		slog.Info("Plots rendered", "sweep", def.Name, "batch", batch, "files", paths)
	}

	if rendered == 0 {
		return fmt.Errorf("no sweep results stored yet; run \"turbocycle sweep\" first")
	}

	return nil
}
