package fractal

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// refCandidates bounds the random search for a replacement reference point.
const refCandidates = 100

// RefTracker owns the current reference point and its orbit. The orbit is
// double-buffered: candidates are evaluated into the scratch buffer and
// swapped into place on adoption, so a render pass never observes a
// partially written orbit and no per-update copy of Detail samples is made.
type RefTracker struct {
	point   complex128
	live    []complex128
	scratch []complex128
	rng     *rand.Rand
	valid   bool
}

// NewRefTracker returns a tracker with no reference adopted yet. The seed
// drives the candidate sampling; fixed seeds give reproducible searches.
func NewRefTracker(seed int64) *RefTracker {
	return &RefTracker{
		live:    make([]complex128, 0, Detail),
		scratch: make([]complex128, 0, Detail),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Update re-centers the reference on or near target. The target itself is
// tried first; if its orbit escapes, up to refCandidates points are sampled
// uniformly from a disk around target whose radius is the smaller of the
// current reference's distance to target and zoom/20, so the search never
// wanders further than the reference is already stale.
//
// If every candidate escapes the previous reference is kept unchanged and
// ErrSearchExhausted is returned. That is a soft degradation, not a fatal
// condition: stale-but-valid beats invalid.
func (t *RefTracker) Update(target complex128, zoom float64) error {
	if t.adopt(target) {
		return nil
	}
	radius := zoom / 20
	if t.valid {
		if d := cmplx.Abs(t.point - target); d < radius {
			radius = d
		}
	}
	for i := 0; i < refCandidates; i++ {
		// sqrt keeps the samples uniform over the disk area
		r := radius * math.Sqrt(t.rng.Float64())
		phi := 2 * math.Pi * t.rng.Float64()
		if t.adopt(target + cmplx.Rect(r, phi)) {
			return nil
		}
	}
	if !t.valid {
		return ErrNoReference
	}
	return ErrSearchExhausted
}

// adopt direct-evaluates c for the full budget and, if it stays bounded,
// swaps its orbit in as the new live buffer.
func (t *RefTracker) adopt(c complex128) bool {
	escape, orbit := Evaluate(c, Detail, t.scratch)
	t.scratch = orbit
	if escape != NoEscape {
		return false
	}
	t.live, t.scratch = t.scratch, t.live
	t.point = c
	t.valid = true
	return true
}

// Valid reports whether a reference point has ever been adopted.
func (t *RefTracker) Valid() bool { return t.valid }

// Point returns the current reference point.
func (t *RefTracker) Point() complex128 { return t.point }

// Orbit returns the live reference orbit. The slice has exactly Detail
// entries whenever Valid() is true, and is read-only for callers: it stays
// stable until the next successful Update.
func (t *RefTracker) Orbit() []complex128 { return t.live }

// Interleaved appends the orbit as 2*Detail interleaved re/im float64
// values to dst, the flat layout the renderer collaborator uploads whole on
// every reference change.
func (t *RefTracker) Interleaved(dst []float64) []float64 {
	dst = dst[:0]
	for _, z := range t.live {
		dst = append(dst, real(z), imag(z))
	}
	return dst
}
