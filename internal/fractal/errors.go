package fractal

import "errors"

// Domain errors for reference orbit maintenance.
var (
	// ErrNoReference indicates no reference point has been adopted yet.
	ErrNoReference = errors.New("fractal: no valid reference point")

	// ErrSearchExhausted indicates the candidate search failed and the
	// previous reference was kept. Callers log and continue; rendering
	// degrades near the view edge but never halts.
	ErrSearchExhausted = errors.New("fractal: reference search exhausted, keeping stale reference")
)
