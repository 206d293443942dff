package ports

import (
	"context"
)

// BarChartSpec describes one bar chart to render
type BarChartSpec struct {
	Title      string
	XLabel     string
	YLabel     string
	Labels     []string
	Values     []float64
	Horizontal bool
}

// ChartRenderer renders a chart to a file and returns its absolute path
type ChartRenderer interface {
	RenderBar(ctx context.Context, spec BarChartSpec) (string, error)
}
