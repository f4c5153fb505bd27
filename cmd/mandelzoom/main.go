package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/explorer"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/server"
	"github.com/san-kum/mandelzoom/internal/store"
	"github.com/san-kum/mandelzoom/internal/view"
)

var (
	dataDir    string
	configFile string
	preset     string
	centerX    float64
	centerY    float64
	zoom       float64
	width      int
	height     int
	outFile    string
	port       int
	maxIter    int
)

// main registers commands and flags; with no subcommand it launches the
// interactive explorer. Exits with status 1 on command failure.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mandelzoom",
		Short: "perturbation-based deep-zoom mandelbrot explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		RunE:  runExplore,
	}
	exploreCmd.Flags().StringVar(&preset, "preset", "", "start at a named preset")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to a png file",
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&centerX, "x", config.DefaultCenterX, "world center x")
	renderCmd.Flags().Float64Var(&centerY, "y", config.DefaultCenterY, "world center y")
	renderCmd.Flags().Float64Var(&zoom, "zoom", config.DefaultZoom, "zoom scale")
	renderCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	renderCmd.Flags().StringVar(&outFile, "out", "mandel.png", "output file")
	renderCmd.Flags().StringVar(&preset, "preset", "", "render a named preset")

	probeCmd := &cobra.Command{
		Use:   "probe [x] [y]",
		Short: "direct-evaluate a point and plot its orbit",
		Args:  cobra.ExactArgs(2),
		RunE:  runProbe,
	}
	probeCmd.Flags().IntVar(&maxIter, "iter", fractal.Detail, "iteration budget")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve renders and gesture sessions over http",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "listen port")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark render passes across zoom depths",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&width, "width", 512, "image width")
	benchCmd.Flags().IntVar(&height, "height", 512, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list landmark presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-16s %.6g %+.6g  zoom %.3g\n", name, p.X, p.Y, p.Zoom)
			}
			return nil
		},
	}

	bookmarkCmd := &cobra.Command{
		Use:   "bookmark",
		Short: "manage saved locations",
	}
	bookmarkAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "save a location",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookmarkAdd,
	}
	bookmarkAddCmd.Flags().Float64Var(&centerX, "x", config.DefaultCenterX, "world center x")
	bookmarkAddCmd.Flags().Float64Var(&centerY, "y", config.DefaultCenterY, "world center y")
	bookmarkAddCmd.Flags().Float64Var(&zoom, "zoom", config.DefaultZoom, "zoom scale")
	bookmarkListCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved locations",
		RunE:  runBookmarkList,
	}
	bookmarkRmCmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "delete a saved location",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookmarkRm,
	}
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRmCmd)

	rootCmd.AddCommand(exploreCmd, renderCmd, probeCmd, serveCmd, benchCmd, presetsCmd, bookmarkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func openStore(cfg *config.Config) (*store.DB, error) {
	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(dir, "bookmarks.db"))
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Start = *p
	}

	db, err := openStore(cfg)
	if err != nil {
		// Explorer works without bookmarks; keep going.
		fmt.Fprintf(os.Stderr, "bookmarks unavailable: %v\n", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}
	return explorer.Run(cfg, db)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	vs := view.ViewState{CenterX: centerX, CenterY: centerY, Zoom: zoom}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		vs = view.ViewState{CenterX: p.X, CenterY: p.Y, Zoom: p.Zoom}
	}
	if vs.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %g", vs.Zoom)
	}

	refs := fractal.NewRefTracker(cfg.Seed)
	if err := refs.Update(0, vs.Zoom); err != nil {
		return err
	}
	if err := refs.Update(vs.Center(), vs.Zoom); err != nil {
		fmt.Fprintf(os.Stderr, "reference search failed, rendering with stale reference: %v\n", err)
	}

	size := view.CanvasSize{W: float64(width), H: float64(height)}
	frame, err := render.Snapshot(vs, size, refs)
	if err != nil {
		return err
	}

	p := render.DefaultPalette()
	p.PhaseR, p.PhaseG, p.PhaseB = cfg.Palette.PhaseR, cfg.Palette.PhaseG, cfg.Palette.PhaseB

	start := time.Now()
	img := render.Render(frame, width, height, p)
	elapsed := time.Since(start)

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	fmt.Printf("rendered %dx%d at (%.15g, %.15g) zoom %.3g in %v\n",
		width, height, vs.CenterX, vs.CenterY, vs.Zoom, elapsed)
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	var x, y float64
	if _, err := fmt.Sscanf(args[0], "%f", &x); err != nil {
		return fmt.Errorf("bad x coordinate: %q", args[0])
	}
	if _, err := fmt.Sscanf(args[1], "%f", &y); err != nil {
		return fmt.Errorf("bad y coordinate: %q", args[1])
	}

	c := complex(x, y)
	escape, orbit := fractal.Evaluate(c, maxIter, nil)

	fmt.Printf("point: %.15g %+.15gi\n", x, y)
	if escape == fractal.NoEscape {
		fmt.Printf("bounded for %d iterations (in or near the set)\n", maxIter)
	} else {
		fmt.Printf("escaped at iteration %d\n", escape)
	}

	mags := make([]float64, len(orbit))
	for i, z := range orbit {
		re, im := real(z), imag(z)
		mags[i] = re*re + im*im
	}
	if len(mags) > 1 {
		graph := asciigraph.Plot(mags,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("|z|^2 per iteration"),
		)
		fmt.Println(graph)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return server.New(cfg).ListenAndServe(ctx, port)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := render.DefaultPalette()
	zooms := []float64{1.5, 1e-2, 1e-4, 1e-6, 1e-9, 1e-12}
	target := complex(-0.743, 0.131)

	refs := fractal.NewRefTracker(cfg.Seed)
	if err := refs.Update(0, 1.5); err != nil {
		return err
	}

	fmt.Printf("benchmarking %dx%d render passes\n\n", width, height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZOOM\tREF\tTIME\tPIXELS/SEC")

	for _, z := range zooms {
		vs := view.ViewState{CenterX: real(target), CenterY: imag(target), Zoom: z}
		refState := "fresh"
		if err := refs.Update(target, z); err != nil {
			refState = "stale"
		}

		size := view.CanvasSize{W: float64(width), H: float64(height)}
		frame, err := render.Snapshot(vs, size, refs)
		if err != nil {
			return err
		}

		start := time.Now()
		render.Render(frame, width, height, p)
		elapsed := time.Since(start)

		pixels := float64(width*height) / elapsed.Seconds()
		fmt.Fprintf(w, "%.1e\t%s\t%v\t%.0f\n", z, refState, elapsed.Round(time.Millisecond), pixels)
	}
	return w.Flush()
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %g", zoom)
	}
	b, err := db.Add(args[0], centerX, centerY, zoom)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s (%s)\n", b.Name, b.ID)
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	marks, err := db.List()
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		fmt.Println("no bookmarks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tX\tY\tZOOM\tSAVED")
	for _, b := range marks {
		fmt.Fprintf(w, "%s\t%.15g\t%.15g\t%.3e\t%s\n",
			b.Name, b.X, b.Y, b.Zoom, humanize.Time(time.Unix(b.Created, 0)))
	}
	return w.Flush()
}

func runBookmarkRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Remove(args[0]); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}
