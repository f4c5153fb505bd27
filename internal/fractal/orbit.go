package fractal

// Detail is the fixed iteration budget shared by direct and perturbation
// evaluation. A reference orbit always holds exactly Detail samples.
const Detail = 64

// NoEscape is returned by Evaluate when the orbit stays within the bailout
// radius for the full iteration budget.
const NoEscape = -1

// directBailoutSq is the squared escape radius (|z| > 2) for direct
// evaluation. The perturbation path bails out at EscapeRadius instead.
const directBailoutSq = 4.0

// Evaluate iterates z' = z*z + c starting from z0 = c, recording each
// iterate into orbit before the escape check. It returns the first index at
// which |z|^2 exceeds the bailout, or NoEscape if the point survives maxIter
// steps. The orbit buffer is reused via append(orbit[:0], ...); when the
// point escapes at index n, only entries [0, n] have been written and
// entries past n are not meaningful.
func Evaluate(c complex128, maxIter int, orbit []complex128) (int, []complex128) {
	orbit = orbit[:0]
	z := c
	for n := 0; n < maxIter; n++ {
		orbit = append(orbit, z)
		re, im := real(z), imag(z)
		if re*re+im*im > directBailoutSq {
			return n, orbit
		}
		z = z*z + c
	}
	return NoEscape, orbit
}
