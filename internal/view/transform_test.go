package view_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandelzoom/internal/view"
)

// canvasOf inverts CanvasToWorld for a given state; used to check that
// zooming keeps a world point pinned to its screen position.
func canvasOf(v view.ViewState, p complex128, size view.CanvasSize) view.CanvasPoint {
	m := size.W
	if size.H < m {
		m = size.H
	}
	vx := real(p) - v.CenterX
	vy := imag(p) - v.CenterY
	return view.CanvasPoint{
		X: vx/(2*v.Zoom)*m + size.W/2,
		Y: -vy/(2*v.Zoom)*m + size.H/2,
	}
}

var _ = Describe("coordinate transforms", func() {
	size := view.CanvasSize{W: 800, H: 600}

	var v view.ViewState
	BeforeEach(func() {
		v = view.ViewState{CenterX: -0.75, CenterY: 0, Zoom: 1.5}
	})

	Describe("CanvasToView", func() {
		It("maps the canvas midpoint to the view origin", func() {
			x, y := v.CanvasToView(view.CanvasPoint{X: 400, Y: 300}, size)
			Expect(x).To(BeNumerically("~", 0, 1e-12))
			Expect(y).To(BeNumerically("~", 0, 1e-12))
		})

		It("flips the Y axis", func() {
			// Canvas Y grows downward; a point above the midpoint has
			// positive view Y.
			_, y := v.CanvasToView(view.CanvasPoint{X: 400, Y: 100}, size)
			Expect(y).To(BeNumerically(">", 0))
		})

		It("normalizes by the shorter canvas dimension", func() {
			x, _ := v.CanvasToView(view.CanvasPoint{X: 400 + 300, Y: 300}, size)
			// 300px along X over a 600px shorter dimension spans zoom.
			Expect(x).To(BeNumerically("~", v.Zoom, 1e-12))
		})
	})

	Describe("CanvasToWorld", func() {
		It("equals ViewToWorld after CanvasToView for any canvas point", func() {
			for _, p := range []view.CanvasPoint{
				{X: 0, Y: 0}, {X: 799, Y: 599}, {X: 123.5, Y: 456.25}, {X: 400, Y: 300},
			} {
				x, y := v.CanvasToView(p, size)
				Expect(v.CanvasToWorld(p, size)).To(Equal(v.ViewToWorld(x, y)))
			}
		})

		It("maps the canvas midpoint to the view center", func() {
			Expect(v.CanvasToWorld(view.CanvasPoint{X: 400, Y: 300}, size)).
				To(Equal(complex(-0.75, 0)))
		})
	})

	Describe("ZoomAround", func() {
		It("keeps the anchor's screen position fixed for any ratio", func() {
			p := complex(-0.743, 0.131)
			for _, ratio := range []float64{0.1, 0.5, 0.75, 1.0, 4.0 / 3.0, 10} {
				state := v
				before := canvasOf(state, p, size)
				state.ZoomAround(p, ratio)
				after := canvasOf(state, p, size)
				Expect(after.X).To(BeNumerically("~", before.X, 1e-9*size.W))
				Expect(after.Y).To(BeNumerically("~", before.Y, 1e-9*size.H))
				world := state.CanvasToWorld(before, size)
				Expect(real(world)).To(BeNumerically("~", real(p), 1e-9))
				Expect(imag(world)).To(BeNumerically("~", imag(p), 1e-9))
			}
		})

		It("scales zoom by the ratio", func() {
			v.ZoomAround(complex(0, 0), 0.75)
			Expect(v.Zoom).To(BeNumerically("~", 1.125, 1e-12))
		})

		It("leaves the center unchanged when anchored at the center", func() {
			v.ZoomAround(v.Center(), 0.75)
			Expect(v.CenterX).To(Equal(-0.75))
			Expect(v.CenterY).To(Equal(0.0))
			Expect(v.Zoom).To(BeNumerically("~", 1.125, 1e-12))
		})
	})

	Describe("renderer matrices", func() {
		It("agrees with CanvasToWorld at pixel centers", func() {
			t := v.Transform(size)
			for _, px := range []float64{0, 100, 400, 799} {
				for _, py := range []float64{0, 150, 300, 599} {
					nx := (2*px+1)/size.W - 1
					ny := 1 - (2*py+1)/size.H
					wx, wy := t.Apply(nx, ny)
					world := v.CanvasToWorld(view.CanvasPoint{X: px + 0.5, Y: py + 0.5}, size)
					Expect(wx).To(BeNumerically("~", real(world), 1e-12))
					Expect(wy).To(BeNumerically("~", imag(world), 1e-12))
				}
			}
		})

		It("offsets by the reference point in the delta matrix", func() {
			ref := complex(-0.7, 0.1)
			t := v.Transform(size)
			d := v.RefOffsetTransform(size, ref)
			wx, wy := t.Apply(0.25, -0.5)
			dx, dy := d.Apply(0.25, -0.5)
			Expect(dx).To(BeNumerically("~", wx-real(ref), 1e-12))
			Expect(dy).To(BeNumerically("~", wy-imag(ref), 1e-12))
		})
	})

	Describe("Mat3", func() {
		It("multiplies with identity unchanged", func() {
			m := v.Transform(size)
			Expect(m.Mul(view.Identity())).To(Equal(m))
			Expect(view.Identity().Mul(m)).To(Equal(m))
		})
	})
})
