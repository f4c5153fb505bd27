package fractal

import (
	"math"
	"testing"
)

func TestEvaluateOriginStaysBounded(t *testing.T) {
	c := complex(0, 0)
	escape, orbit := Evaluate(c, Detail, nil)

	if escape != NoEscape {
		t.Fatalf("expected origin to stay bounded, escaped at %d", escape)
	}
	if len(orbit) != Detail {
		t.Fatalf("expected %d orbit entries, got %d", Detail, len(orbit))
	}
	if orbit[0] != c {
		t.Errorf("expected orbit[0] == c, got %v", orbit[0])
	}
	for i, z := range orbit {
		if math.IsNaN(real(z)) || math.IsNaN(imag(z)) ||
			math.IsInf(real(z), 0) || math.IsInf(imag(z), 0) {
			t.Errorf("orbit[%d] not finite: %v", i, z)
		}
	}
}

func TestEvaluateImmediateEscape(t *testing.T) {
	// |2+2i|^2 = 8 > 4, so the very first recorded iterate already escapes.
	escape, orbit := Evaluate(complex(2, 2), Detail, nil)

	if escape != 0 {
		t.Fatalf("expected escape at index 0, got %d", escape)
	}
	if orbit[0] != complex(2, 2) {
		t.Errorf("expected orbit[0] == c, got %v", orbit[0])
	}
}

func TestEvaluateKnownEscapeIndex(t *testing.T) {
	// c = 1: orbit 1, 2, 5, ... |2|^2 = 4 is not past the bailout, |5|^2 is.
	escape, orbit := Evaluate(complex(1, 0), Detail, nil)

	if escape != 2 {
		t.Fatalf("expected escape at index 2 for c=1, got %d", escape)
	}
	if orbit[1] != complex(2, 0) || orbit[2] != complex(5, 0) {
		t.Errorf("unexpected orbit prefix: %v", orbit[:3])
	}
}

func TestEvaluateInteriorPoints(t *testing.T) {
	// Real axis [-2, 0.25] lies inside the set.
	for _, c := range []complex128{
		complex(-1, 0),
		complex(-0.75, 0),
		complex(0.25, 0),
		complex(-2, 0),
	} {
		if escape, _ := Evaluate(c, Detail, nil); escape != NoEscape {
			t.Errorf("expected %v to stay bounded, escaped at %d", c, escape)
		}
	}
}

func TestEvaluateReusesBuffer(t *testing.T) {
	buf := make([]complex128, 0, Detail)
	_, orbit := Evaluate(complex(0, 0), Detail, buf)
	if &orbit[0] != &buf[:1][0] {
		t.Error("expected orbit to reuse the provided buffer")
	}

	// A second evaluation overwrites, not appends.
	escape, orbit := Evaluate(complex(1, 0), Detail, orbit)
	if escape != 2 || len(orbit) != 3 {
		t.Errorf("expected escape 2 with 3 entries after reuse, got %d/%d", escape, len(orbit))
	}
}
