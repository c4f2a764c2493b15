package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders percent in [0, 1] as a filled bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// Sparkline renders the most recent width values as block characters scaled
// between zero and the window maximum.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	chars := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if peak > 0 {
			idx = int(v / peak * float64(len(chars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	if pad := width - len(values); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

func Separator(width int) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(strings.Repeat("─", width))
}
