package render

import (
	"image/color"
	"testing"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/view"
)

func testFrame(t *testing.T, w, h int) Frame {
	t.Helper()
	vs := view.ViewState{CenterX: -0.75, CenterY: 0, Zoom: 1.5}
	refs := fractal.NewRefTracker(1)
	if err := refs.Update(vs.Center(), vs.Zoom); err != nil {
		t.Fatal(err)
	}
	f, err := Snapshot(vs, view.CanvasSize{W: float64(w), H: float64(h)}, refs)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSnapshotRequiresReference(t *testing.T) {
	vs := view.ViewState{CenterX: 0, CenterY: 0, Zoom: 1.5}
	refs := fractal.NewRefTracker(1)

	if _, err := Snapshot(vs, view.CanvasSize{W: 64, H: 64}, refs); err != fractal.ErrNoReference {
		t.Fatalf("expected ErrNoReference, got %v", err)
	}
}

func TestSnapshotOrbitBuffer(t *testing.T) {
	f := testFrame(t, 64, 64)

	if len(f.Orbit) != fractal.Detail {
		t.Errorf("expected %d orbit samples, got %d", fractal.Detail, len(f.Orbit))
	}
	if len(f.Interleaved) != 2*fractal.Detail {
		t.Errorf("expected %d interleaved floats, got %d", 2*fractal.Detail, len(f.Interleaved))
	}
}

func TestRenderInteriorAndExterior(t *testing.T) {
	p := DefaultPalette()
	f := testFrame(t, 64, 64)
	img := Render(f, 64, 64, p)

	// The view is centered on -0.75+0i, deep inside the set.
	if got := img.RGBAAt(32, 32); got != p.InSet {
		t.Errorf("center pixel should be in-set, got %v", got)
	}
	// The top-left corner maps far outside the set.
	if got := img.RGBAAt(0, 0); got == p.InSet {
		t.Error("corner pixel should have escaped")
	}
}

func TestRenderMatchesDwells(t *testing.T) {
	p := DefaultPalette()
	f := testFrame(t, 32, 16)

	img := Render(f, 32, 16, p)
	dwells := Dwells(f, 32, 16)

	for py := 0; py < 16; py++ {
		for px := 0; px < 32; px++ {
			want := p.Shade(dwells[py*32+px])
			if got := img.RGBAAt(px, py); got != want {
				t.Fatalf("pixel (%d,%d): %v != %v", px, py, got, want)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := DefaultPalette()
	f := testFrame(t, 48, 48)

	a := Render(f, 48, 48, p)
	b := Render(f, 48, 48, p)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("repeated renders of the same frame differ")
		}
	}
}

func TestPaletteShade(t *testing.T) {
	p := DefaultPalette()

	if got := p.Shade(fractal.InSet); got != p.InSet {
		t.Errorf("in-set dwell should shade to the fixed color, got %v", got)
	}

	c := p.Shade(12.34)
	if c.A != 0xff {
		t.Error("escaped colors must be opaque")
	}
	if c == (color.RGBA{A: 0xff}) {
		t.Error("escaped dwell should not shade to black")
	}
}
