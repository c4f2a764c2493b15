package metrics

import "github.com/san-kum/ballpit/internal/world"

// RestFraction reports the share of balls at rest on the last observed frame.
type RestFraction struct {
	name    string
	resting int
	total   int
}

func NewRestFraction() *RestFraction {
	return &RestFraction{name: "rest_fraction"}
}

func (r *RestFraction) Name() string { return r.name }

func (r *RestFraction) Observe(s *world.Scene, st world.FrameStats) {
	r.resting = s.Resting()
	r.total = st.Balls
}

func (r *RestFraction) Value() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.resting) / float64(r.total)
}

func (r *RestFraction) Reset() {
	r.resting = 0
	r.total = 0
}
