// Package gesture turns raw pointer and wheel samples into view updates.
//
// The controller is a finite state machine over the active pointer count:
// Idle (0 pointers), Dragging (1), Pinching (2). Pointers beyond the second
// are tracked so their lifts are handled, but ignored for transforms. It
// runs on the single-threaded control path: every sample is handled to
// completion before the next, and every view change refreshes the
// reference orbit before the re-render callback fires, so a render pass
// never observes a half-updated reference.
package gesture

import (
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/view"
)

// Phase classifies a pointer sample from the gesture source collaborator.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// Sample is one raw pointer event: an opaque pointer id, its phase, and
// the canvas position at the time of the event.
type Sample struct {
	ID    int
	Phase Phase
	Pos   view.CanvasPoint
}

// controller states, keyed by the number of active pointers
const (
	stateIdle = iota
	stateDragging
	statePinching
)

// wheelBase: one wheel notch of 100 scales the view by 4/3.
const wheelBase = 4.0 / 3.0

// Controller owns the ViewState and drives the reference tracker. It is
// the single writer of both; collaborators receive read-only snapshots.
type Controller struct {
	view     *view.ViewState
	size     view.CanvasSize
	refs     *fractal.RefTracker
	onChange func()

	state     int
	order     []int // active pointer ids, oldest first
	pointers  map[int]view.CanvasPoint
	anchor    complex128 // drag start location, or pinch midpoint
	pinchDiam float64    // pinch start diameter in world space
}

// NewController wires a controller to the camera, the reference tracker,
// and a re-render callback invoked after every view change.
func NewController(vs *view.ViewState, size view.CanvasSize, refs *fractal.RefTracker, onChange func()) *Controller {
	return &Controller{
		view:     vs,
		size:     size,
		refs:     refs,
		onChange: onChange,
		pointers: make(map[int]view.CanvasPoint),
	}
}

// Resize updates the canvas extent used for coordinate mapping.
func (c *Controller) Resize(size view.CanvasSize) {
	c.size = size
}

// View returns the current camera state.
func (c *Controller) View() view.ViewState { return *c.view }

// Pointer feeds one pointer sample through the state machine.
func (c *Controller) Pointer(s Sample) {
	switch s.Phase {
	case PhaseDown:
		c.pointerDown(s.ID, s.Pos)
	case PhaseMove:
		c.pointerMove(s.ID, s.Pos)
	case PhaseUp, PhaseCancel:
		c.pointerUp(s.ID)
	}
}

func (c *Controller) pointerDown(id int, pos view.CanvasPoint) {
	if _, ok := c.pointers[id]; !ok {
		c.order = append(c.order, id)
	}
	c.pointers[id] = pos
	c.rederiveAnchor()
}

func (c *Controller) pointerMove(id int, pos view.CanvasPoint) {
	if _, ok := c.pointers[id]; !ok {
		return
	}
	c.pointers[id] = pos

	switch c.state {
	case stateDragging:
		if id != c.order[0] {
			return
		}
		cur := c.view.CanvasToWorld(pos, c.size)
		c.translate(c.anchor - cur)
		c.changed(c.anchor)

	case statePinching:
		if id != c.order[0] && id != c.order[1] {
			return
		}
		w0 := c.view.CanvasToWorld(c.pointers[c.order[0]], c.size)
		w1 := c.view.CanvasToWorld(c.pointers[c.order[1]], c.size)
		mid := (w0 + w1) / 2
		c.translate(c.anchor - mid)
		// The diameter is translation-invariant, so the pre-translate
		// positions still measure it correctly.
		if diam := cmplx.Abs(w0 - w1); diam > 0 && c.pinchDiam > 0 {
			c.view.ZoomAround(c.anchor, c.pinchDiam/diam)
		}
		c.changed(c.anchor)
	}
}

func (c *Controller) pointerUp(id int) {
	if _, ok := c.pointers[id]; !ok {
		return
	}
	delete(c.pointers, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.rederiveAnchor()
}

// rederiveAnchor re-reads the gesture anchor from the surviving pointers
// after any pointer set change.
func (c *Controller) rederiveAnchor() {
	switch len(c.order) {
	case 0:
		c.state = stateIdle
		c.anchor = 0
		c.pinchDiam = 0
	case 1:
		c.state = stateDragging
		c.anchor = c.view.CanvasToWorld(c.pointers[c.order[0]], c.size)
		c.pinchDiam = 0
	default:
		c.state = statePinching
		w0 := c.view.CanvasToWorld(c.pointers[c.order[0]], c.size)
		w1 := c.view.CanvasToWorld(c.pointers[c.order[1]], c.size)
		c.anchor = (w0 + w1) / 2
		c.pinchDiam = cmplx.Abs(w0 - w1)
	}
}

// Wheel zooms around the world point under the cursor. Independent of the
// pointer state: ratio = (4/3)^(deltaY/100), so scrolling up (negative
// deltaY) magnifies.
func (c *Controller) Wheel(pos view.CanvasPoint, deltaY float64) {
	ratio := math.Pow(wheelBase, deltaY/100)
	anchor := c.view.CanvasToWorld(pos, c.size)
	c.view.ZoomAround(anchor, ratio)
	c.changed(anchor)
}

// Set jumps the camera directly to the given world coordinates and zoom,
// bypassing gesture input. Used by bookmarks, presets, and tests.
func (c *Controller) Set(x, y, zoom float64) {
	c.view.CenterX = x
	c.view.CenterY = y
	c.view.Zoom = zoom
	c.changed(c.view.Center())
}

func (c *Controller) translate(d complex128) {
	c.view.CenterX += real(d)
	c.view.CenterY += imag(d)
}

// changed refreshes the reference orbit around the world point the change
// was anchored at, then triggers a re-render. A failed search keeps the
// stale reference and only logs: degraded precision beats no frame.
func (c *Controller) changed(anchor complex128) {
	if err := c.refs.Update(anchor, c.view.Zoom); err != nil {
		slog.Debug("reference refresh failed", "err", err,
			"x", real(anchor), "y", imag(anchor), "zoom", c.view.Zoom)
	}
	if c.onChange != nil {
		c.onChange()
	}
}
