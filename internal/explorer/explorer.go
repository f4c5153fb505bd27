// Package explorer is the terminal front end: a bubbletea model that maps
// key presses to synthesized gesture samples and shades the dwell grid
// with half-block cells, two vertical samples per terminal cell.
package explorer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/gesture"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/store"
	"github.com/san-kum/mandelzoom/internal/view"
)

const statsWidth = 44

// Model is the explorer UI state. The view state, tracker, and controller
// are shared pointers so bubbletea's value copies all drive one camera.
type Model struct {
	cfg     *config.Config
	vs      *view.ViewState
	refs    *fractal.RefTracker
	ctrl    *gesture.Controller
	db      *store.DB // nil when bookmarks are unavailable
	palette render.Palette

	cols, rows int // canvas size in terminal cells
	dwells     []float64
	renderTime time.Duration
	escaped    int

	presets   []string
	presetIdx int
	notice    string
	showHelp  bool
}

// NewModel builds the explorer over a camera starting at cfg.Start. db may
// be nil; bookmark keys then just report unavailability.
func NewModel(cfg *config.Config, db *store.DB) Model {
	vs := &view.ViewState{CenterX: cfg.Start.X, CenterY: cfg.Start.Y, Zoom: cfg.Start.Zoom}
	refs := fractal.NewRefTracker(cfg.Seed)
	ctrl := gesture.NewController(vs, view.CanvasSize{W: 80, H: 48}, refs, nil)

	p := render.DefaultPalette()
	p.PhaseR, p.PhaseG, p.PhaseB = cfg.Palette.PhaseR, cfg.Palette.PhaseG, cfg.Palette.PhaseB

	m := Model{
		cfg:     cfg,
		vs:      vs,
		refs:    refs,
		ctrl:    ctrl,
		db:      db,
		palette: p,
		cols:    80,
		rows:    24,
		presets: config.ListPresets(),
	}
	ctrl.Set(cfg.Start.X, cfg.Start.Y, cfg.Start.Zoom)
	m.rerender()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// canvas size in dwell samples: one column per cell, two rows per cell.
func (m Model) canvasSize() (int, int) {
	return m.cols, m.rows * 2
}

func (m *Model) rerender() {
	w, h := m.canvasSize()
	size := view.CanvasSize{W: float64(w), H: float64(h)}
	m.ctrl.Resize(size)

	frame, err := render.Snapshot(*m.vs, size, m.refs)
	if err != nil {
		// Before the first adoption there is nothing to evaluate against.
		m.dwells = nil
		m.notice = err.Error()
		return
	}

	start := time.Now()
	m.dwells = render.Dwells(frame, w, h)
	m.renderTime = time.Since(start)

	m.escaped = 0
	for _, d := range m.dwells {
		if !fractal.IsInSet(d) {
			m.escaped++
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width - statsWidth - 4
		if m.cols < 16 {
			m.cols = 16
		}
		m.rows = msg.Height - 2
		if m.rows < 8 {
			m.rows = 8
		}
		m.rerender()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	w, h := m.canvasSize()
	center := view.CanvasPoint{X: float64(w) / 2, Y: float64(h) / 2}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.pan(-w/8, 0)
	case "right", "l":
		m.pan(w/8, 0)
	case "up", "k":
		m.pan(0, -h/8)
	case "down", "j":
		m.pan(0, h/8)
	case "+", "=":
		m.ctrl.Wheel(center, -100)
		m.rerender()
	case "-", "_":
		m.ctrl.Wheel(center, 100)
		m.rerender()
	case "0":
		m.ctrl.Set(config.DefaultCenterX, config.DefaultCenterY, config.DefaultZoom)
		m.rerender()
	case "p":
		m.presetIdx = (m.presetIdx + 1) % len(m.presets)
		name := m.presets[m.presetIdx]
		p := config.GetPreset(name)
		m.ctrl.Set(p.X, p.Y, p.Zoom)
		m.rerender()
		m.notice = "preset: " + name
	case "b":
		m.saveBookmark()
	case "n":
		m.nextBookmark()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// pan synthesizes a one-pointer drag so panning exercises the same path as
// a real gesture source: the world point under the pointer stays put.
func (m *Model) pan(dx, dy int) {
	w, h := m.canvasSize()
	start := view.CanvasPoint{X: float64(w) / 2, Y: float64(h) / 2}
	end := view.CanvasPoint{X: start.X - float64(dx), Y: start.Y - float64(dy)}
	m.ctrl.Pointer(gesture.Sample{ID: 0, Phase: gesture.PhaseDown, Pos: start})
	m.ctrl.Pointer(gesture.Sample{ID: 0, Phase: gesture.PhaseMove, Pos: end})
	m.ctrl.Pointer(gesture.Sample{ID: 0, Phase: gesture.PhaseUp, Pos: end})
	m.rerender()
}

func (m *Model) saveBookmark() {
	if m.db == nil {
		m.notice = "bookmarks unavailable (no database)"
		return
	}
	name := "mark-" + time.Now().Format("150405")
	if _, err := m.db.Add(name, m.vs.CenterX, m.vs.CenterY, m.vs.Zoom); err != nil {
		m.notice = "save failed: " + err.Error()
		return
	}
	m.notice = "saved " + name
}

func (m *Model) nextBookmark() {
	if m.db == nil {
		m.notice = "bookmarks unavailable (no database)"
		return
	}
	marks, err := m.db.List()
	if err != nil || len(marks) == 0 {
		m.notice = "no bookmarks"
		return
	}
	// walk the list by matching the current view, falling back to the first
	idx := 0
	for i, b := range marks {
		if b.X == m.vs.CenterX && b.Y == m.vs.CenterY && b.Zoom == m.vs.Zoom {
			idx = (i + 1) % len(marks)
			break
		}
	}
	b := marks[idx]
	m.ctrl.Set(b.X, b.Y, b.Zoom)
	m.rerender()
	m.notice = "bookmark: " + b.Name
}

func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.renderCanvas()),
		statsStyle.Render(m.renderStats()),
	)
}

// renderCanvas shades two vertical dwell samples per terminal cell using
// the upper-half-block glyph: foreground is the top sample, background the
// bottom one.
func (m Model) renderCanvas() string {
	w, h := m.canvasSize()
	if len(m.dwells) != w*h {
		return "no frame"
	}
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			top := m.palette.Shade(m.dwells[(2*row)*w+col])
			bot := m.palette.Shade(m.dwells[(2*row+1)*w+col])
			style := lipgloss.NewStyle().
				Foreground(hexColor(top.R, top.G, top.B)).
				Background(hexColor(bot.R, bot.G, bot.B))
			b.WriteString(style.Render("▀"))
		}
		if row < m.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderStats() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("MANDELZOOM") + "\n")

	s.WriteString(labelStyle.Render("Center") +
		valueStyle.Render(fmt.Sprintf("%.15g", m.vs.CenterX)) + "\n")
	s.WriteString(labelStyle.Render("") +
		valueStyle.Render(fmt.Sprintf("%.15g", m.vs.CenterY)) + "\n")
	s.WriteString(labelStyle.Render("Zoom") +
		valueStyle.Render(fmt.Sprintf("%.3e", m.vs.Zoom)) + "\n")
	s.WriteString(labelStyle.Render("Magnify") +
		valueStyle.Render(fmt.Sprintf("%.2ex", config.DefaultZoom/m.vs.Zoom)) + "\n")

	if m.refs.Valid() {
		ref := m.refs.Point()
		s.WriteString(labelStyle.Render("Reference") +
			valueStyle.Render(fmt.Sprintf("%.6g, %.6g", real(ref), imag(ref))) + "\n")
	} else {
		s.WriteString(labelStyle.Render("Reference") + valueStyle.Render("(none)") + "\n")
	}

	if n := len(m.dwells); n > 0 {
		s.WriteString(labelStyle.Render("Escaped") +
			valueStyle.Render(fmt.Sprintf("%.1f%%", 100*float64(m.escaped)/float64(n))) + "\n")
	}
	s.WriteString(labelStyle.Render("Frame") +
		valueStyle.Render(m.renderTime.Round(time.Microsecond).String()) + "\n")

	if m.notice != "" {
		s.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\narrows/hjkl pan\n+/- zoom  0 home\np presets  b save mark\nn next mark  q quit"))
	} else {
		s.WriteString(helpStyle.Render("\n? help  q quit"))
	}
	return s.String()
}

// Run starts the explorer in the alternate screen.
func Run(cfg *config.Config, db *store.DB) error {
	p := tea.NewProgram(NewModel(cfg, db), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}
