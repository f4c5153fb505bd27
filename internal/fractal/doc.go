// Package fractal implements the Mandelbrot evaluation core.
//
// The package provides two evaluation paths:
//
//   - [Evaluate]: the direct escape-time recurrence z' = z*z + c, used to
//     validate candidate reference points and record their orbits
//   - [Dwell]: the perturbation recurrence d' = 2*Z*d + d*d + d0 against a
//     shared reference orbit, which evaluates any nearby point using only
//     the small offset d, never the absolute coordinate
//
// A single [RefTracker] owns the current reference point and its orbit of
// exactly [Detail] samples. Re-centering the reference near the region of
// interest keeps the delta magnitudes small, which is what keeps ordinary
// float64 arithmetic adequate at deep zoom.
//
// # Thread Safety
//
// RefTracker is NOT thread-safe; it belongs to the single-threaded control
// path. Dwell is a pure function of (delta, orbit) and may be called from
// any number of goroutines as long as the orbit buffer is not swapped while
// a pass is in flight.
package fractal
