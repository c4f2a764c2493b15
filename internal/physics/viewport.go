package physics

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (v Viewport) Floor(radius float64) float64 { return v.Height - radius }
