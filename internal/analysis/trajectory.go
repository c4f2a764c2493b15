package analysis

import (
	"math"
	"sort"

	"github.com/san-kum/ballpit/internal/sim"
)

// Apex is the highest point of one arc.
type Apex struct {
	Frame int
	Y     float64
}

// Track returns the samples of one ball ordered by frame.
func Track(samples []sim.Sample, ball int) []sim.Sample {
	var track []sim.Sample
	for _, s := range samples {
		if s.Ball == ball {
			track = append(track, s)
		}
	}
	sort.SliceStable(track, func(i, j int) bool { return track[i].Frame < track[j].Frame })
	return track
}

// Apexes finds local minima of Y. Plateaus report their first sample, and a
// ball lying still produces none.
func Apexes(samples []sim.Sample, ball int) []Apex {
	track := Track(samples, ball)
	var out []Apex
	for i := 1; i+1 < len(track); i++ {
		prev, cur, next := track[i-1].Y, track[i].Y, track[i+1].Y
		if cur < prev && cur <= next {
			out = append(out, Apex{Frame: track[i].Frame, Y: cur})
		}
	}
	return out
}

// FloorFunc reports the resting height for the sample at a frame. Runs with
// a resize have a different floor before and after it.
type FloorFunc func(frame int) float64

// FixedFloor is a FloorFunc for runs that never resize.
func FixedFloor(floor float64) FloorFunc {
	return func(int) float64 { return floor }
}

// SettleFrame returns the frame from which the ball stays on the floor with
// no horizontal motion until the end of the recording. ok is false when the
// ball is still moving in the last sample.
func SettleFrame(samples []sim.Sample, ball int, floorAt FloorFunc, gravity float64) (frame int, ok bool) {
	track := Track(samples, ball)
	resting := func(s sim.Sample) bool {
		return s.VX == 0 && s.Y == floorAt(s.Frame) && s.VY >= 0 && s.VY <= gravity
	}

	i := len(track)
	for i > 0 && resting(track[i-1]) {
		i--
	}
	if i == len(track) {
		return -1, false
	}
	return track[i].Frame, true
}

// Height is the apex height above the floor in effect at its frame.
func (a Apex) Height(floorAt FloorFunc) float64 { return floorAt(a.Frame) - a.Y }

// Restitution is the mean ratio of successive rebound heights above floor.
// It returns NaN when fewer than two apexes sit above the floor.
func Restitution(apexes []Apex, floorAt FloorFunc) float64 {
	sum, n := 0.0, 0
	for i := 1; i < len(apexes); i++ {
		h0 := apexes[i-1].Height(floorAt)
		h1 := apexes[i].Height(floorAt)
		if h0 <= 0 || h1 <= 0 {
			continue
		}
		sum += h1 / h0
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Series extracts one field of a ball's track for plotting.
func Series(samples []sim.Sample, ball int, field string) ([]float64, bool) {
	track := Track(samples, ball)
	pick := map[string]func(sim.Sample) float64{
		"x":  func(s sim.Sample) float64 { return s.X },
		"y":  func(s sim.Sample) float64 { return s.Y },
		"vx": func(s sim.Sample) float64 { return s.VX },
		"vy": func(s sim.Sample) float64 { return s.VY },
	}[field]
	if pick == nil {
		return nil, false
	}
	out := make([]float64, len(track))
	for i, s := range track {
		out[i] = pick(s)
	}
	return out, true
}
