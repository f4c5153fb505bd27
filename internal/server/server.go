// Package server exposes the renderer over HTTP: a stateless PNG endpoint
// and a websocket session that accepts raw gesture samples from a remote
// gesture source and streams back the resulting view state.
package server

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/view"
)

// Server serves renders and gesture sessions.
type Server struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg, log: slog.Default()}
}

// Handler returns the HTTP mux: /render for one-shot PNGs, /ws for
// interactive gesture sessions.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/ws", s.handleSession)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

// handleRender renders one PNG frame at the requested coordinates:
// /render?x=-0.75&y=0&zoom=1.5&w=1024&h=768
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vs := view.ViewState{
		CenterX: queryFloat(q.Get("x"), s.cfg.Start.X),
		CenterY: queryFloat(q.Get("y"), s.cfg.Start.Y),
		Zoom:    queryFloat(q.Get("zoom"), s.cfg.Start.Zoom),
	}
	width := queryInt(q.Get("w"), s.cfg.Width)
	height := queryInt(q.Get("h"), s.cfg.Height)

	if vs.Zoom <= 0 || width <= 0 || height <= 0 || width > 8192 || height > 8192 {
		http.Error(w, "bad render parameters", http.StatusBadRequest)
		return
	}

	// Seed at the origin (always in-set) so a failed search near the view
	// degrades to a stale reference instead of no frame at all.
	refs := fractal.NewRefTracker(s.cfg.Seed)
	if err := refs.Update(0, vs.Zoom); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := refs.Update(vs.Center(), vs.Zoom); err != nil {
		s.log.Debug("reference refresh failed, rendering stale", "err", err,
			"x", vs.CenterX, "y", vs.CenterY)
	}

	size := view.CanvasSize{W: float64(width), H: float64(height)}
	frame, err := render.Snapshot(vs, size, refs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	start := time.Now()
	img := render.Render(frame, width, height, paletteFrom(s.cfg))
	s.log.Debug("rendered", "w", width, "h", height, "elapsed", time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn("png encode failed", "err", err)
	}
}

func paletteFrom(cfg *config.Config) render.Palette {
	p := render.DefaultPalette()
	p.PhaseR = cfg.Palette.PhaseR
	p.PhaseG = cfg.Palette.PhaseG
	p.PhaseB = cfg.Palette.PhaseB
	return p
}

func queryFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
