package render

import (
	"image/color"
	"math"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

// Palette maps dwell values to colors: a periodic sine palette over the
// continuous dwell, with a fixed per-channel phase offset, plus a fixed
// color for in-set points.
type Palette struct {
	PhaseR, PhaseG, PhaseB float64
	InSet                  color.RGBA
}

// DefaultPalette spaces the channel phases a third of a period apart.
func DefaultPalette() Palette {
	return Palette{
		PhaseR: 0.0,
		PhaseG: 2 * math.Pi / 3,
		PhaseB: 4 * math.Pi / 3,
		InSet:  color.RGBA{A: 0xff},
	}
}

// Shade returns the color for a dwell value:
// sin(dwell*0.1 + phase)*0.5 + 0.5 per channel.
func (p Palette) Shade(dwell float64) color.RGBA {
	if fractal.IsInSet(dwell) {
		return p.InSet
	}
	return color.RGBA{
		R: channel(dwell, p.PhaseR),
		G: channel(dwell, p.PhaseG),
		B: channel(dwell, p.PhaseB),
		A: 0xff,
	}
}

func channel(dwell, phase float64) uint8 {
	v := math.Sin(dwell*0.1+phase)*0.5 + 0.5
	return uint8(math.Round(v * 255))
}
