// Package plots renders the sensitivity sweep results as high-resolution
// PNG performance plots.
package plots

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"turbocycle/internal/models"
	"turbocycle/internal/sweep"
)

// Line colors follow the original report figures.
var (
	purple   = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}
	darkBlue = color.RGBA{R: 0x00, G: 0x00, B: 0x8b, A: 0xff}
	darkRed  = color.RGBA{R: 0x8b, G: 0x00, B: 0x00, A: 0xff}
	green    = color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
)

// Renderer renders performance plots into an output directory at a fixed
// resolution. 8x5 inch figures, DPI from configuration (300 by default).
type Renderer struct {
	Dir string
	DPI int
}

func NewRenderer(dir string, dpi int) *Renderer {
	return &Renderer{Dir: dir, DPI: dpi}
}

// RenderSweep renders the plot pair for one sweep's results: thrust and
// specific impulse against the swept parameter. Returns the written file
// paths.
func (r *Renderer) RenderSweep(results []*models.SweepResult) ([]string, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no sweep results to plot")
	}

	switch results[0].Parameter {
	case sweep.ParamAmbientTemperature:
		return r.renderPair(results, "Ambient Temperature (K)",
			"Thrust vs Ambient Temperature", "thrust_vs_temperature.png", darkBlue,
			"Isp vs Ambient Temperature", "isp_vs_temperature.png", purple)
	case sweep.ParamPressureRatio:
		return r.renderPair(results, "Compressor Pressure Ratio",
			"Thrust vs Compressor Pressure Ratio", "thrust_vs_pr.png", darkRed,
			"Isp vs Compressor Pressure Ratio", "isp_vs_pr.png", green)
	default:
		return nil, fmt.Errorf("no plots defined for sweep parameter %q", results[0].Parameter)
	}
}

func (r *Renderer) renderPair(results []*models.SweepResult, xLabel,
	thrustTitle, thrustFile string, thrustColor color.Color,
	ispTitle, ispFile string, ispColor color.Color) ([]string, error) {

	xs := make([]float64, len(results))
	thrusts := make([]float64, len(results))
	isps := make([]float64, len(results))
	for i, res := range results {
		xs[i] = res.Value
		thrusts[i] = res.Result.Thrust
		isps[i] = res.Result.SpecificImpulse
	}

	thrustPath, err := r.renderLine(thrustTitle, xLabel, "Thrust (N)", thrustFile, thrustColor, xs, thrusts)
	if err != nil {
		return nil, err
	}

	ispPath, err := r.renderLine(ispTitle, xLabel, "Specific Impulse (s)", ispFile, ispColor, xs, isps)
	if err != nil {
		return nil, err
	}

	return []string{thrustPath, ispPath}, nil
}

// renderLine writes a single gridded line plot as a PNG.
func (r *Renderer) renderLine(title, xLabel, yLabel, filename string, c color.Color, xs, ys []float64) (string, error) {
	if len(xs) != len(ys) {
		return "", fmt.Errorf("mismatched series lengths: %d x, %d y", len(xs), len(ys))
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build line plot: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = c
	p.Add(line)

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plot directory: %w", err)
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 5*vg.Inch),
		vgimg.UseDPI(r.DPI),
	)
	p.Draw(draw.New(canvas))

	path := filepath.Join(r.Dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create plot file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("failed to write plot %s: %w", path, err)
	}

	return path, nil
}
