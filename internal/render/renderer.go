// Package render runs the data-parallel evaluation pass: one pure
// perturbation evaluation per pixel against a read-only frame snapshot.
package render

import (
	"image"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/view"
)

// Frame is the read-only snapshot handed to an evaluation pass. It matches
// what a GPU renderer would receive: two affine matrices and the flat
// reference orbit buffer, uploaded whole on every reference change. Once a
// pass is launched the frame must not be mutated; the tracker's buffer
// swap on reference updates guarantees a pass never sees a partial orbit.
type Frame struct {
	Transform   view.Mat3    // normalized device coords -> world
	RefOffset   view.Mat3    // normalized device coords -> delta from reference
	Orbit       []complex128 // the live reference orbit, fractal.Detail samples
	Interleaved []float64    // same orbit as 2*Detail re/im floats
}

// Snapshot captures the current view and reference state for one pass.
func Snapshot(vs view.ViewState, size view.CanvasSize, refs *fractal.RefTracker) (Frame, error) {
	if !refs.Valid() {
		return Frame{}, fractal.ErrNoReference
	}
	return Frame{
		Transform:   vs.Transform(size),
		RefOffset:   vs.RefOffsetTransform(size, refs.Point()),
		Orbit:       refs.Orbit(),
		Interleaved: refs.Interleaved(nil),
	}, nil
}

// Render evaluates the frame at w x h pixels and shades it with the
// palette. Rows are split into chunks across NumCPU workers; every pixel
// is an independent evaluation of (delta, orbit), so no synchronization
// beyond the final join is needed.
func Render(f Frame, w, h int, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	parallelFor(h, 8, func(y0, y1 int) {
		for py := y0; py < y1; py++ {
			ny := 1 - (2*float64(py)+1)/float64(h)
			for px := 0; px < w; px++ {
				nx := (2*float64(px)+1)/float64(w) - 1
				dx, dy := f.RefOffset.Apply(nx, ny)
				dwell := fractal.Dwell(complex(dx, dy), f.Orbit)
				img.SetRGBA(px, py, p.Shade(dwell))
			}
		}
	})
	return img
}

// Dwells evaluates the frame into a w*h row-major dwell grid without
// shading. The explorer uses this to shade cells itself.
func Dwells(f Frame, w, h int) []float64 {
	out := make([]float64, w*h)
	parallelFor(h, 8, func(y0, y1 int) {
		for py := y0; py < y1; py++ {
			ny := 1 - (2*float64(py)+1)/float64(h)
			for px := 0; px < w; px++ {
				nx := (2*float64(px)+1)/float64(w) - 1
				dx, dy := f.RefOffset.Apply(nx, ny)
				out[py*w+px] = fractal.Dwell(complex(dx, dy), f.Orbit)
			}
		}
	})
	return out
}
