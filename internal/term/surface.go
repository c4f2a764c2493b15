package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/ballpit/internal/palette"
)

// Surface rasterises circles onto half-cell blocks. Each terminal cell holds
// two vertically stacked pixels drawn with '▀' and '▄'.
type Surface struct {
	cols, rows   int
	cellW, cellH float64
	halves       [][]string
}

func NewSurface(cols, rows int, cellW, cellH float64) *Surface {
	s := &Surface{cellW: cellW, cellH: cellH}
	s.Resize(cols, rows)
	return s
}

func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.halves = make([][]string, s.rows*2)
	for i := range s.halves {
		s.halves[i] = make([]string, s.cols)
	}
}

// PixelSize is the viewport the surface covers.
func (s *Surface) PixelSize() (w, h float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

func (s *Surface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *Surface) Clear() {
	for _, row := range s.halves {
		for i := range row {
			row[i] = ""
		}
	}
}

// FillCircle paints every half-cell whose centre lies inside the circle.
func (s *Surface) FillCircle(x, y, r float64, color string) {
	hw, hh := s.cellW, s.cellH/2
	lit := false
	for hy := int(math.Floor((y - r) / hh)); hy <= int(math.Ceil((y+r)/hh)); hy++ {
		cy := (float64(hy) + 0.5) * hh
		for hx := int(math.Floor((x - r) / hw)); hx <= int(math.Ceil((x+r)/hw)); hx++ {
			cx := (float64(hx) + 0.5) * hw
			if (cx-x)*(cx-x)+(cy-y)*(cy-y) <= r*r {
				s.paint(hx, hy, color)
				lit = true
			}
		}
	}
	if !lit {
		s.paint(int(math.Floor(x/hw)), int(math.Floor(y/hh)), color)
	}
}

func (s *Surface) paint(col, half int, color string) {
	if col < 0 || half < 0 || col >= s.cols || half >= len(s.halves) {
		return
	}
	s.halves[half][col] = color
}

// At returns the colors of the top and bottom half of a cell.
func (s *Surface) At(col, row int) (top, bottom string) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return "", ""
	}
	return s.halves[row*2][col], s.halves[row*2+1][col]
}

// Flush copies the surface onto the screen. It does not call Show.
func (s *Surface) Flush(screen tcell.Screen, base tcell.Style) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top, bottom := s.At(col, row)
			switch {
			case top == "" && bottom == "":
				screen.SetContent(col, row, ' ', nil, base)
			case top != "":
				st := base.Foreground(tcellColor(top))
				if bottom != "" {
					st = st.Background(tcellColor(bottom))
				}
				screen.SetContent(col, row, '▀', nil, st)
			default:
				screen.SetContent(col, row, '▄', nil, base.Foreground(tcellColor(bottom)))
			}
		}
	}
}

func tcellColor(hex string) tcell.Color {
	r, g, b := palette.RGB8(hex)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
