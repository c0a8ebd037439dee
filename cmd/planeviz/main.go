package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planeviz/internal/colorize"
	"github.com/san-kum/planeviz/internal/config"
	"github.com/san-kum/planeviz/internal/export"
	"github.com/san-kum/planeviz/internal/transform"
	"github.com/san-kum/planeviz/internal/video"
	"github.com/san-kum/planeviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool

	function   string
	branch     float64
	separation float64
	step       float64
	colorStep  float64
	power      float64
	clip       float64
	seconds    float64
	fps        int
	reverse    bool
	gifOut     bool
	output     string
	at         float64
	svgOut     string
	theme      string

	svgWidth, svgHeight         int
	previewWidth, previewHeight int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "planeviz",
		Short: "complex plane visualization toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML scene file")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "start from a named preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&function, "func", "f", config.DefaultFunction, "function to visualize")
	rootCmd.PersistentFlags().Float64Var(&branch, "branch", 0, "log branch angle phi, cut along arg = phi")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", config.DefaultOutput, "output path without extension")

	colorsCmd := &cobra.Command{
		Use:   "colors",
		Short: "domain-coloring plot of input and output planes",
		RunE:  runColors,
	}
	colorsCmd.Flags().Float64Var(&colorStep, "step", config.DefaultColorStep, "sampling step")
	colorsCmd.Flags().Float64Var(&power, "power", 1, "brightness exponent")
	colorsCmd.Flags().Float64Var(&clip, "clip", 0, "clip magnitude, 0 disables")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render grid transition snapshots",
		RunE:  runSnapshot,
	}
	addGridFlags(snapshotCmd)
	snapshotCmd.Flags().Float64SliceP("at", "t", nil, "transition times in [0, 1]")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render the grid transition as a video",
		RunE:  runAnimate,
	}
	addGridFlags(animateCmd)
	animateCmd.Flags().Float64VarP(&seconds, "time", "T", config.DefaultSeconds, "ramp duration in seconds")
	animateCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	animateCmd.Flags().BoolVar(&reverse, "reverse", false, "play the transition back to the identity")
	animateCmd.Flags().BoolVar(&gifOut, "gif-fallback", false, "write a GIF when ffmpeg is missing")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "plot the eased frame schedule",
		RunE:  runSchedule,
	}
	scheduleCmd.Flags().Float64VarP(&seconds, "time", "T", config.DefaultSeconds, "ramp duration in seconds")
	scheduleCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	scheduleCmd.Flags().BoolVar(&reverse, "reverse", false, "include the reverse pass")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "interactive domain-coloring inspector with hover readout",
		RunE:  runInspect,
	}
	inspectCmd.Flags().Float64Var(&power, "power", 1, "brightness exponent")
	inspectCmd.Flags().Float64Var(&clip, "clip", 0, "clip magnitude, 0 disables")
	inspectCmd.Flags().StringVar(&theme, "theme", "", "theme: "+strings.Join(viz.ThemeNames(), ", "))

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "export the transformed grid as SVG",
		RunE:  runSVG,
	}
	addGridFlags(svgCmd)
	svgCmd.Flags().Float64VarP(&at, "at", "t", 1, "transition time in [0, 1]")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "width in pixels")
	svgCmd.Flags().IntVar(&svgHeight, "height", 800, "height in pixels")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "draw the transformed grid in the terminal",
		RunE:  runPreview,
	}
	addGridFlags(previewCmd)
	previewCmd.Flags().Float64VarP(&at, "at", "t", 1, "transition time in [0, 1]")
	previewCmd.Flags().IntVar(&previewWidth, "width", 60, "width in cells")
	previewCmd.Flags().IntVar(&previewHeight, "height", 24, "height in cells")
	previewCmd.Flags().StringVar(&svgOut, "svg", "", "also write the preview dots as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var b strings.Builder
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(&b, "%-18s %s -> %s\n", name, p.Function.Name, p.Output)
			}
			fmt.Println(viz.BoxWithTitle("presets", strings.TrimRight(b.String(), "\n"), 60))
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(colorsCmd, snapshotCmd, animateCmd, scheduleCmd, inspectCmd, svgCmd, previewCmd, presetsCmd, initCmd)
	return rootCmd
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&separation, "sep", config.DefaultSeparation, "grid line separation")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "sampling step along grid lines")
}

// loadConfig resolves defaults, then the preset, then the config file,
// then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("func") {
		cfg.Function.Name = function
	}
	if flags.Changed("branch") {
		cfg.Function.Branch = branch
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("sep") {
		cfg.Grid.Separation = separation
	}
	if flags.Changed("step") {
		if cmd.Name() == "colors" {
			cfg.Colors.Step = colorStep
		} else {
			cfg.Grid.Step = step
		}
	}
	if flags.Changed("power") {
		cfg.Colors.Power = power
	}
	if flags.Changed("clip") {
		cfg.Colors.Clip = clip
	}
	if flags.Changed("time") {
		cfg.Animation.Seconds = seconds
	}
	if flags.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if flags.Changed("reverse") {
		cfg.Animation.Reverse = reverse
	}
	if flags.Changed("gif-fallback") {
		cfg.Animation.GIFFallback = gifOut
	}
	if flags.Changed("at") && cmd.Name() == "snapshot" {
		ts, err := flags.GetFloat64Slice("at")
		if err != nil {
			return nil, err
		}
		cfg.Snapshots = ts
	}
	if name := cmd.Name(); (name == "svg" || name == "preview") && !(at >= 0 && at <= 1) {
		return nil, fmt.Errorf("%w: --at must be in [0, 1], got %g", config.ErrInvalidConfig, at)
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newTransformer(cfg *config.Config) (*transform.Transformer, error) {
	f, err := cfg.Func()
	if err != nil {
		return nil, err
	}
	opts := []transform.Option{transform.WithStep(cfg.Grid.Step)}
	if cfg.PlotLimits != nil {
		opts = append(opts, transform.WithPlotLimits(cfg.PlotLimits.X.Interval(), cfg.PlotLimits.Y.Interval()))
	}
	tr, err := transform.New(f, cfg.Domain.X.Interval(), cfg.Domain.Y.Interval(), cfg.Grid.Separation, opts...)
	if err != nil {
		return nil, err
	}
	for _, cv := range cfg.Curves {
		pts, err := cv.Samples()
		if err != nil {
			return nil, err
		}
		tr.AddCurve(pts, cv.Style)
	}
	return tr, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func runColors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := cfg.Func()
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.Output); err != nil {
		return err
	}

	fmt.Printf("coloring %s...\n", cfg.Function.Name)
	cp, err := colorize.Plot(f, cfg.Domain.X.Interval(), cfg.Domain.Y.Interval(), cfg.Colors.Step, cfg.Encoder(), cfg.Colors.Size)
	if err != nil {
		return err
	}
	defer cp.Close()

	path, err := cp.Save(cfg.Output)
	if err != nil {
		return err
	}
	nx, ny := cp.Mesh.Size()
	fmt.Printf("mesh: %dx%d\n", nx, ny)
	fmt.Printf("saved: %s\n", path)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := newTransformer(cfg)
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.Output); err != nil {
		return err
	}

	for _, t := range cfg.Snapshots {
		path, err := tr.SaveSnapshot(fmt.Sprintf("%s_%g", cfg.Output, t), t, cfg.Figure)
		if err != nil {
			return err
		}
		fmt.Printf("t=%-5g saved: %s\n", t, path)
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := newTransformer(cfg)
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.Output); err != nil {
		return err
	}

	var vopts []video.Option
	if cfg.Animation.GIFFallback {
		vopts = append(vopts, video.WithGIFFallback())
	}
	w, path, err := video.Create(cfg.Output, cfg.Animation.FPS, vopts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := cfg.Animation
	err = tr.Animate(ctx, w, a.Seconds, a.FPS, a.Reverse, cfg.Figure, func(frame, total int) {
		fmt.Printf("\r%s", viz.FrameProgress(frame, total, 40))
	})
	fmt.Println()
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", path)
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a := cfg.Animation
	times, err := transform.FrameTimes(a.Seconds, a.FPS, a.Reverse)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("empty schedule")
	}
	eased := make([]float64, len(times))
	for i, t := range times {
		eased[i] = transform.Ease(t)
	}

	fmt.Println(asciigraph.Plot(eased,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("eased t over %d frames at %d fps", len(times), a.FPS)),
	))
	ramp := int(a.Seconds * float64(a.FPS))
	fmt.Println(viz.Separator(80))
	fmt.Printf("ramp: %d frames  hold: %d frames  reverse: %v\n", ramp, a.FPS/2, a.Reverse)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := cfg.Func()
	if err != nil {
		return err
	}
	if cfg.Theme != "" {
		viz.SetTheme(cfg.Theme)
	}
	m := viz.NewInspector(f, cfg.Function.Name, cfg.Domain.X.Interval(), cfg.Domain.Y.Interval(), cfg.Encoder(), cfg.CursorOptions()...)
	return m.Run()
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := newTransformer(cfg)
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.Output); err != nil {
		return err
	}
	path := cfg.Output
	if filepath.Ext(path) != ".svg" {
		path += ".svg"
	}
	if err := os.WriteFile(path, []byte(tr.SVG(at, svgWidth, svgHeight)), 0644); err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", path)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := newTransformer(cfg)
	if err != nil {
		return err
	}

	xlim, ylim := tr.Limits()
	curves := make([][]complex128, 0, len(tr.Curves()))
	for _, c := range tr.Curves() {
		curves = append(curves, c.At(at))
	}
	canvas := viz.Preview(curves, xlim, ylim, previewWidth, previewHeight)
	fmt.Println(viz.RenderPreview(canvas, fmt.Sprintf("%s at t=%g", cfg.Function.Name, at), xlim, ylim))

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", svgOut)
	}
	return nil
}
