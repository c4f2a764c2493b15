package world

// Surface is a 2D drawing target that can be wiped and filled with circles.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, color string)
}

type nullSurface struct{}

func (nullSurface) Clear()                                {}
func (nullSurface) FillCircle(x, y, r float64, c string) {}

// Discard is a Surface that draws nothing.
var Discard Surface = nullSurface{}

// Circle is one recorded FillCircle call.
type Circle struct {
	X, Y, R float64
	Color   string
}

// Recorder keeps the draw calls of the most recent frame.
type Recorder struct {
	Clears  int
	Circles []Circle
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Circles = r.Circles[:0]
}

func (r *Recorder) FillCircle(x, y, rad float64, color string) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, R: rad, Color: color})
}
