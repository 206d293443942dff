package chart

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dataclaw/internal"
	"dataclaw/ports"
)

// steelblue, matching the report's single accent color
var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// Renderer draws bar charts into timestamped PNG files under the
// configured output root.
type Renderer struct {
	outputRoot string
	log        *internal.Logger
}

// NewRenderer creates a chart renderer writing into outputRoot
func NewRenderer(outputRoot string) *Renderer {
	return &Renderer{outputRoot: outputRoot, log: internal.DefaultLogger}
}

// RenderBar renders the spec as a vertical or horizontal bar chart and
// returns the absolute path of the saved PNG.
func (r *Renderer) RenderBar(ctx context.Context, spec ports.BarChartSpec) (string, error) {
	if len(spec.Values) == 0 {
		return "", fmt.Errorf("no values to chart")
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.Horizontal = spec.Horizontal
	p.Add(bars)

	if spec.Horizontal {
		p.NominalY(spec.Labels...)
	} else {
		p.NominalX(spec.Labels...)
		p.X.Tick.Label.Rotation = -0.5
	}

	name := fmt.Sprintf("chart_%s.png", time.Now().Format("20060102_150405"))
	path, err := filepath.Abs(filepath.Join(r.outputRoot, name))
	if err != nil {
		return "", err
	}
	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	r.log.Info("[Chart] saved %s (%d bars)", name, len(spec.Values))
	return path, nil
}
