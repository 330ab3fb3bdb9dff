package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/export"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/probe"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
	"github.com/san-kum/efield/internal/viz"
)

var (
	// Config file
	configFile string
	// Preset name
	preset  string
	verbose bool
	// Tracer overrides
	method string
	steps  int
	lines  int
	// view
	theme   string
	vectors bool
	// trace output
	asCSV    bool
	asJSON   bool
	traceOut string
	// profile
	samples int
	// svg
	svgOut    string
	svgWidth  int
	svgHeight int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets every
// flag variable to its default.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "efield",
		Short: "2d electrostatics lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: runView,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset scene")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&method, "method", "euler", "line stepping method (euler, rk4)")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", trace.DefaultMaxSteps, "max points per field line")
	rootCmd.PersistentFlags().IntVar(&lines, "lines", trace.DefaultLinesPerCharge, "field lines per charge")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive terminal lab",
		RunE:  runView,
	}
	for _, c := range []*cobra.Command{rootCmd, viewCmd} {
		c.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
		c.Flags().BoolVar(&vectors, "vectors", false, "start with the vector grid shown")
	}

	probeCmd := &cobra.Command{
		Use:   "probe [x] [y]",
		Short: "print the field breakdown at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  runProbe,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace field lines and summarize them",
		RunE:  runTrace,
	}
	traceCmd.Flags().BoolVar(&asCSV, "csv", false, "write line points as CSV")
	traceCmd.Flags().BoolVar(&asJSON, "json", false, "write lines as JSON")
	traceCmd.Flags().StringVarP(&traceOut, "out", "o", "", "output file (default stdout)")

	profileCmd := &cobra.Command{
		Use:   "profile [x0] [y0] [x1] [y1]",
		Short: "plot |E| along a segment",
		Args:  cobra.ExactArgs(4),
		RunE:  runProfile,
	}
	profileCmd.Flags().IntVar(&samples, "samples", 80, "points sampled along the segment")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render regions, charges and field lines to SVG",
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "efield.svg", "output file")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available preset scenes",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(viewCmd, probeCmd, traceCmd, profileCmd, svgCmd, presetsCmd)
	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	scene.SetLogger(logger)
}

// lab is the loaded configuration and the scene built from it.
type lab struct {
	cfg    *config.Config
	scene  *scene.Scene
	ev     *field.Evaluator
	tracer *trace.Tracer
}

// loadLab applies config file, then preset, then explicit flags.
func loadLab(cmd *cobra.Command) (*lab, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Scene = *p
	}

	if configFile == "" || cmd.Flags().Changed("method") {
		cfg.Trace.Method = method
	}
	if configFile == "" || cmd.Flags().Changed("steps") {
		cfg.Trace.MaxSteps = steps
	}
	if configFile == "" || cmd.Flags().Changed("lines") {
		cfg.Trace.LinesPerCharge = lines
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	tr, err := cfg.Tracer()
	if err != nil {
		return nil, err
	}
	slog.Debug("lab loaded",
		"charges", sc.NumCharges(), "dielectrics", sc.NumDielectrics(), "shields", sc.NumShields(),
		"method", cfg.Trace.Method)
	return &lab{cfg: cfg, scene: sc, ev: cfg.Evaluator(), tracer: tr}, nil
}

func runView(cmd *cobra.Command, args []string) error {
	l, err := loadLab(cmd)
	if err != nil {
		return err
	}
	th, ok := viz.GetTheme(theme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	s, err := viz.NewSession(l.scene, viz.Options{
		Evaluator:      l.ev,
		Tracer:         l.tracer,
		Viewport:       l.cfg.Viewport(),
		EraseRadius:    l.cfg.View.EraseRadius,
		DielectricEpsR: l.cfg.View.DielectricEpsR,
		GridSpacing:    l.cfg.View.GridSpacing,
		Theme:          th,
		ShowVectors:    vectors,
	})
	if err != nil {
		return err
	}
	// keep log output from tearing the alternate screen
	scene.SetLogger(nil)
	return viz.Run(s)
}

func warnEmpty(snap scene.Snapshot) {
	if snap.Empty() {
		slog.Warn("scene is empty, pick one with --preset or --config")
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	xy, err := parseFloats(args)
	if err != nil {
		return err
	}
	l, err := loadLab(cmd)
	if err != nil {
		return err
	}

	r := probe.Probe(l.ev, geom.V(xy[0], xy[1]), l.scene.Snapshot())
	out := cmd.OutOrStdout()
	for _, line := range r.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	if asCSV && asJSON {
		return fmt.Errorf("--csv and --json are exclusive")
	}
	l, err := loadLab(cmd)
	if err != nil {
		return err
	}
	snap := l.scene.Snapshot()
	warnEmpty(snap)
	traced := l.tracer.Trace(snap, l.cfg.Viewport())

	if asJSON {
		data := export.NewExportData(snap, traced, l.tracer.Config().Method)
		if traceOut != "" {
			return export.ExportJSON(traceOut, data)
		}
		return export.WriteJSON(cmd.OutOrStdout(), data)
	}

	out := cmd.OutOrStdout()
	if traceOut != "" {
		f, err := os.Create(traceOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if asCSV {
		return export.WriteLinesCSV(out, traced)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHARGE\tQ\tX\tY\tLINES\tPOINTS\tLENGTH")
	for i, c := range snap.Charges {
		var points int
		var length float64
		n := 0
		for _, ln := range traced {
			if ln.Charge != i {
				continue
			}
			n++
			points += len(ln.Points)
			length += ln.Length()
		}
		fmt.Fprintf(w, "%d\t%+.2e\t%.1f\t%.1f\t%d\t%d\t%.1f\n", i+1, c.Q, c.Pos.X, c.Pos.Y, n, points, length)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats := trace.Summarize(traced)
	fmt.Fprintf(out, "\nlines: %d  degenerate: %d  points: %d  arrows: %d  longest: %d\n",
		stats.Lines, stats.Degenerate, stats.Points, stats.Arrows, stats.MaxPoints)

	reasons := make([]trace.StopReason, 0, len(stats.ByStop))
	for r := range stats.ByStop {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, r := range reasons {
		fmt.Fprintf(out, "  %-10s %d\n", r, stats.ByStop[r])
	}
	return nil
}

// sampleProfile evaluates |E| at n evenly spaced points from a to b.
func sampleProfile(ev *field.Evaluator, snap scene.Snapshot, a, b geom.Vec, n int) []float64 {
	if n < 2 {
		n = 2
	}
	data := make([]float64, n)
	d := b.Sub(a)
	for i := range data {
		t := float64(i) / float64(n-1)
		data[i] = ev.Magnitude(a.Add(d.Scale(t)), snap)
	}
	return data
}

func runProfile(cmd *cobra.Command, args []string) error {
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	l, err := loadLab(cmd)
	if err != nil {
		return err
	}

	a, b := geom.V(v[0], v[1]), geom.V(v[2], v[3])
	data := sampleProfile(l.ev, l.scene.Snapshot(), a, b, samples)

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("|E| (N/C) from %v to %v", a, b)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	l, err := loadLab(cmd)
	if err != nil {
		return err
	}
	snap := l.scene.Snapshot()
	warnEmpty(snap)
	vp := l.cfg.Viewport()
	traced := l.tracer.Trace(snap, vp)

	opts := export.DefaultSVGOptions()
	opts.Width, opts.Height = svgWidth, svgHeight
	svg := export.SceneToSVG(snap, traced, vp.Bounds, opts)

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d lines)\n", svgOut, len(traced))
	return nil
}
