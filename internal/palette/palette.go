// Package palette converts the hex colors balls carry into the color types of
// each frontend and generates spawn colors.
package palette

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("palette: invalid color")

// goldenAngle spreads successive hues so neighbours never look alike.
const goldenAngle = 137.50776

func Parse(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, hex, err)
	}
	return c, nil
}

func MustParse(hex string) colorful.Color {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB8 returns 8-bit channels for hex, or mid grey when hex does not parse.
func RGB8(hex string) (r, g, b uint8) {
	c, err := Parse(hex)
	if err != nil {
		return 0x80, 0x80, 0x80
	}
	return c.Clamped().RGB255()
}

// Blend mixes a toward b in Lab space. t is clamped to [0, 1]. An unparsable
// input returns a unchanged.
func Blend(a, b string, t float64) string {
	ca, err := Parse(a)
	if err != nil {
		return a
	}
	cb, err := Parse(b)
	if err != nil {
		return a
	}
	t = math.Max(0, math.Min(1, t))
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// Cycle returns n distinct colors starting from the hue of the default ball
// color. The sequence is the same on every call.
func Cycle(n int) []string {
	out := make([]string, n)
	c := Cycler{}
	for i := range out {
		out[i] = c.Next()
	}
	return out
}

// Cycler hands out spawn colors one at a time for rainbow mode.
type Cycler struct {
	n int
}

func (c *Cycler) Next() string {
	h, s, v := MustParse("#F3CF68").Hsv()
	hue := math.Mod(h+float64(c.n)*goldenAngle, 360)
	c.n++
	return colorful.Hsv(hue, s, v).Clamped().Hex()
}

func (c *Cycler) Reset() { c.n = 0 }
