package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/gesture"
	"github.com/san-kum/mandelzoom/internal/view"
)

// inMsg is one gesture-source sample from the browser. Type is one of
// down, move, up, cancel, wheel, set, resize.
type inMsg struct {
	Type   string  `json:"type"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Zoom   float64 `json:"zoom,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
}

// outMsg is the view state pushed after every change; the client re-fetches
// /render with these coordinates.
type outMsg struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Zoom    float64 `json:"zoom"`
	RefX    float64 `json:"refX"`
	RefY    float64 `json:"refY"`
}

// handleSession upgrades to a websocket and runs one interactive session:
// every incoming sample runs to completion on this goroutine before the
// next is read, which serializes reference updates against view reads.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.Warn("websocket accept failed", "err", err)
		return
	}
	defer c.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	vs := &view.ViewState{
		CenterX: s.cfg.Start.X,
		CenterY: s.cfg.Start.Y,
		Zoom:    s.cfg.Start.Zoom,
	}
	refs := fractal.NewRefTracker(s.cfg.Seed)
	size := view.CanvasSize{W: float64(s.cfg.Width), H: float64(s.cfg.Height)}

	changed := false
	ctrl := gesture.NewController(vs, size, refs, func() { changed = true })
	ctrl.Set(vs.CenterX, vs.CenterY, vs.Zoom)

	if err := s.pushView(ctx, c, vs, refs); err != nil {
		return
	}

	for {
		var msg inMsg
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			s.log.Debug("session closed", "err", err)
			return
		}

		changed = false
		switch msg.Type {
		case "down":
			ctrl.Pointer(gesture.Sample{ID: msg.ID, Phase: gesture.PhaseDown, Pos: view.CanvasPoint{X: msg.X, Y: msg.Y}})
		case "move":
			ctrl.Pointer(gesture.Sample{ID: msg.ID, Phase: gesture.PhaseMove, Pos: view.CanvasPoint{X: msg.X, Y: msg.Y}})
		case "up":
			ctrl.Pointer(gesture.Sample{ID: msg.ID, Phase: gesture.PhaseUp, Pos: view.CanvasPoint{X: msg.X, Y: msg.Y}})
		case "cancel":
			ctrl.Pointer(gesture.Sample{ID: msg.ID, Phase: gesture.PhaseCancel, Pos: view.CanvasPoint{X: msg.X, Y: msg.Y}})
		case "wheel":
			ctrl.Wheel(view.CanvasPoint{X: msg.X, Y: msg.Y}, msg.DeltaY)
		case "set":
			if msg.Zoom > 0 {
				ctrl.Set(msg.X, msg.Y, msg.Zoom)
			}
		case "resize":
			if msg.W > 0 && msg.H > 0 {
				ctrl.Resize(view.CanvasSize{W: msg.W, H: msg.H})
			}
		default:
			s.log.Debug("unknown message type", "type", msg.Type)
		}

		if changed {
			if err := s.pushView(ctx, c, vs, refs); err != nil {
				return
			}
		}
	}
}

func (s *Server) pushView(ctx context.Context, c *websocket.Conn, vs *view.ViewState, refs *fractal.RefTracker) error {
	wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(wctx, c, outMsg{
		CenterX: vs.CenterX,
		CenterY: vs.CenterY,
		Zoom:    vs.Zoom,
		RefX:    real(refs.Point()),
		RefY:    imag(refs.Point()),
	})
}
