package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/ballpit/internal/palette"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viz"
)

const (
	background = "#0a0a0a"
	floorColor = "#444466"
)

// CanvasToSVG converts a Braille canvas to SVG format. Dots take the tint
// of their cell; untinted dots use the default ball color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, physics.DefaultColor)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := ""
			if c := canvas.Colors[row][col]; c != "" {
				fill = fmt.Sprintf(` fill="%s"`, c)
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"%s/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectorySVG draws every ball's recorded path as a polyline in viewport
// pixels, with a disc at its last recorded position.
func TrajectorySVG(samples []sim.Sample, vp physics.Viewport) string {
	if len(samples) == 0 {
		return ""
	}

	paths := make(map[int][]sim.Sample)
	for _, s := range samples {
		paths[s.Ball] = append(paths[s.Ball], s)
	}
	balls := make([]int, 0, len(paths))
	for b := range paths {
		balls = append(balls, b)
	}
	sort.Ints(balls)
	colors := palette.Cycle(len(balls))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, vp.Width, vp.Height, vp.Width, vp.Height, background, vp.Height, vp.Width, vp.Height, floorColor)

	for i, b := range balls {
		path := paths[b]
		sort.SliceStable(path, func(a, c int) bool { return path[a].Frame < path[c].Frame })

		fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="0.7" points="`, colors[i])
		for j, p := range path {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
		}
		sb.WriteString("\"/>\n")

		last := path[len(path)-1]
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", last.X, last.Y, physics.DefaultRadius, colors[i])
	}

	sb.WriteString("</svg>")
	return sb.String()
}
