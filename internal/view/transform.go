// Package view holds the camera state and the stateless coordinate
// mappings between canvas, view, and world space. World coordinates are
// complex128 values on the Mandelbrot plane; canvas coordinates are pixels
// with Y growing downward.
package view

// CanvasPoint is a position in canvas pixels, origin top-left.
type CanvasPoint struct {
	X, Y float64
}

// CanvasSize is the canvas extent in pixels.
type CanvasSize struct {
	W, H float64
}

func (s CanvasSize) shorter() float64 {
	if s.W < s.H {
		return s.W
	}
	return s.H
}

// ViewState is the camera: the world-plane center and the zoom scale.
// Zoom is the half-extent of the view along the shorter canvas dimension,
// so smaller zoom means deeper magnification. Zoom is always > 0.
//
// ViewState is owned by the interaction controller (single writer); the
// renderer reads snapshots via Transform and RefOffsetTransform.
type ViewState struct {
	CenterX, CenterY float64
	Zoom             float64
}

// Center returns the view center as a world point.
func (v ViewState) Center() complex128 {
	return complex(v.CenterX, v.CenterY)
}

// CanvasToView maps a canvas position to view space: centered on the
// canvas midpoint, normalized by the shorter dimension, scaled by 2*zoom,
// with the Y axis flipped (canvas Y grows downward, math Y upward).
func (v ViewState) CanvasToView(p CanvasPoint, size CanvasSize) (float64, float64) {
	m := size.shorter()
	x := (p.X - size.W/2) / m * 2 * v.Zoom
	y := -(p.Y - size.H/2) / m * 2 * v.Zoom
	return x, y
}

// ViewToWorld translates a view-space position by the camera center.
func (v ViewState) ViewToWorld(x, y float64) complex128 {
	return complex(x+v.CenterX, y+v.CenterY)
}

// CanvasToWorld is the composition ViewToWorld ∘ CanvasToView.
func (v ViewState) CanvasToWorld(p CanvasPoint, size CanvasSize) complex128 {
	x, y := v.CanvasToView(p, size)
	return v.ViewToWorld(x, y)
}

// ZoomAround rescales the view by ratio while keeping world point p at the
// same screen position: the center moves toward p by (1-ratio) of the
// offset, then zoom is scaled. Holds for any ratio > 0.
func (v *ViewState) ZoomAround(p complex128, ratio float64) {
	vx := real(p) - v.CenterX
	vy := imag(p) - v.CenterY
	v.CenterX += (1 - ratio) * vx
	v.CenterY += (1 - ratio) * vy
	v.Zoom *= ratio
}

// Transform returns the affine matrix mapping normalized device
// coordinates ([-1,1] on both axes, Y up) to world coordinates, accounting
// for the canvas aspect ratio.
func (v ViewState) Transform(size CanvasSize) Mat3 {
	m := size.shorter()
	return Mat3{
		v.Zoom * size.W / m, 0, v.CenterX,
		0, v.Zoom * size.H / m, v.CenterY,
		0, 0, 1,
	}
}

// RefOffsetTransform is the same matrix family but translating by
// (center - ref) instead of center: applying it to a pixel's normalized
// coordinates yields the point's delta from the reference directly, so the
// evaluation pass never reconstructs the absolute world coordinate.
func (v ViewState) RefOffsetTransform(size CanvasSize, ref complex128) Mat3 {
	t := v.Transform(size)
	t[2] = v.CenterX - real(ref)
	t[5] = v.CenterY - imag(ref)
	return t
}
