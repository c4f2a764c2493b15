package analysis

import (
	"github.com/guptarohit/asciigraph"
)

const (
	defaultPlotWidth  = 70
	defaultPlotHeight = 15
)

// Plot renders a line chart. Long series are downsampled to the plot width.
func Plot(series []float64, caption string) string {
	return PlotSized(series, caption, defaultPlotWidth, defaultPlotHeight)
}

func PlotSized(series []float64, caption string, width, height int) string {
	if len(series) == 0 {
		return "(no data)"
	}
	data := series
	if width > 0 && len(data) > width {
		data = Downsample(data, width)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// Downsample keeps n evenly spaced points, always including the last one.
func Downsample(series []float64, n int) []float64 {
	if n <= 0 || len(series) <= n {
		return series
	}
	if n == 1 {
		return []float64{series[len(series)-1]}
	}
	out := make([]float64, n)
	step := float64(len(series)-1) / float64(n-1)
	for i := range out {
		out[i] = series[int(float64(i)*step+0.5)]
	}
	return out
}
