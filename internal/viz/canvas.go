package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid addressed either in dots or in viewport pixels.
// A cell covers CellWidth x CellHeight pixels, so one dot covers a quarter of
// the cell height and half its width.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string

	cellW, cellH float64
}

// NewCanvas returns a canvas where one pixel is one dot.
func NewCanvas(w, h int) *Canvas {
	return NewPixelCanvas(w, h, 2, 4)
}

func NewPixelCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	c := &Canvas{cellW: cellW, cellH: cellH}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid. Content is discarded.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.Width, c.Height = cols, rows
	c.Grid = make([][]rune, rows)
	c.Colors = make([][]string, rows)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, cols)
		c.Colors[i] = make([]string, cols)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// PixelSize is the viewport the canvas covers.
func (c *Canvas) PixelSize() (w, h float64) {
	return float64(c.Width) * c.cellW, float64(c.Height) * c.cellH
}

// CellAt maps a viewport pixel to the cell containing it.
func (c *Canvas) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

// CellCenter maps a cell to the viewport pixel at its centre.
func (c *Canvas) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.SetColor(x, y, "")
}

// SetColor sets a dot and tints its cell. An empty color keeps the cell's
// current tint.
func (c *Canvas) SetColor(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if color != "" {
		c.Colors[row][col] = color
	}
}

// IsSet reports whether a dot is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
	if c.Grid[row][col] == blank {
		c.Colors[row][col] = ""
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// FillCircle lights every dot whose centre lies inside the circle, given in
// viewport pixels. A circle smaller than one dot still lights the dot under
// its centre.
func (c *Canvas) FillCircle(x, y, r float64, color string) {
	dotW, dotH := c.cellW/2, c.cellH/4
	x0 := int(math.Floor((x - r) / dotW))
	x1 := int(math.Ceil((x + r) / dotW))
	y0 := int(math.Floor((y - r) / dotH))
	y1 := int(math.Ceil((y + r) / dotH))

	lit := false
	for dy := y0; dy <= y1; dy++ {
		cy := (float64(dy) + 0.5) * dotH
		for dx := x0; dx <= x1; dx++ {
			cx := (float64(dx) + 0.5) * dotW
			if (cx-x)*(cx-x)+(cy-y)*(cy-y) <= r*r {
				c.SetColor(dx, dy, color)
				lit = true
			}
		}
	}
	if !lit {
		c.SetColor(int(math.Floor(x/dotW)), int(math.Floor(y/dotH)), color)
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of same-colored cells wrapped in a
// foreground style. Lines are joined without a trailing newline.
func (c *Canvas) Render() string {
	lines := make([]string, c.Height)
	for i, row := range c.Grid {
		var b strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if color := c.Colors[i][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
