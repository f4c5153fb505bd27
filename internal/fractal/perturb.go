package fractal

import "math"

// EscapeRadius is the bailout magnitude for the perturbation recurrence.
// It is much larger than the direct evaluator's radius of 2: the continuous
// dwell estimate stabilizes with a large bailout. The two radii are kept
// distinct on purpose; see TestBailoutRadiiDiffer.
const EscapeRadius = 256.0

// InSet is the dwell sentinel for points that never escape within Detail
// steps of the reference orbit.
var InSet = math.Inf(-1)

// log2(log2(EscapeRadius)), the additive term that anchors the continuous
// dwell so that an escape exactly at the bailout contributes n.
var log2log2Bailout = math.Log2(math.Log2(EscapeRadius))

// IsInSet reports whether a dwell value is the in-set sentinel.
func IsInSet(dwell float64) bool {
	return math.IsInf(dwell, -1)
}

// Dwell evaluates the point ref+delta against the reference orbit using the
// delta recurrence d' = 2*Z*d + d*d + d0. The absolute coordinate is never
// reconstructed; only the offset magnitude matters, which is what makes
// float64 arithmetic hold up at deep zoom.
//
// On escape at step n it returns the continuous dwell
//
//	n - log2(log2(|d+Z|)) + log2(log2(EscapeRadius))
//
// which smooths the banding between integer iteration counts. If the point
// survives all len(orbit) steps it returns InSet.
//
// Dwell is pure and safe for data-parallel invocation; the orbit buffer
// must not be mutated while a pass is in flight.
func Dwell(delta complex128, orbit []complex128) float64 {
	d := delta
	for n, z := range orbit {
		re, im := real(d)+real(z), imag(d)+imag(z)
		mag2 := re*re + im*im
		if mag2 > EscapeRadius*EscapeRadius {
			// mag > EscapeRadius > 1, so log2(log2(mag)) is defined.
			mag := math.Sqrt(mag2)
			return float64(n) - math.Log2(math.Log2(mag)) + log2log2Bailout
		}
		d = 2*z*d + d*d + delta
	}
	return InSet
}
