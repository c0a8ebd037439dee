package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/planeviz/internal/colorize"
	"github.com/san-kum/planeviz/internal/cursor"
	"github.com/san-kum/planeviz/internal/functions"
	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFunction   = "joukowsky"
	DefaultSeparation = 0.1
	DefaultStep       = 0.01
	DefaultColorStep  = 0.005
	DefaultSeconds    = 8.0
	DefaultFPS        = 25
	DefaultOutput     = "output/plane"
	DefaultCirclePts  = 200
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Limits is a [lo, hi] pair as written in YAML.
type Limits [2]float64

func (l Limits) Interval() grid.Interval { return grid.Interval{Lo: l[0], Hi: l[1]} }

type Config struct {
	Function   FunctionConfig  `yaml:"function"`
	Domain     DomainConfig    `yaml:"domain"`
	Grid       GridConfig      `yaml:"grid"`
	PlotLimits *DomainConfig   `yaml:"plot_limits,omitempty"`
	Colors     ColorConfig     `yaml:"colors"`
	Figure     plot.Options    `yaml:"figure"`
	Animation  AnimationConfig `yaml:"animation"`
	Curves     []CurveConfig   `yaml:"curves,omitempty"`
	Snapshots  []float64       `yaml:"snapshots,omitempty"`
	Output     string          `yaml:"output"`
	Cursor     CursorConfig    `yaml:"cursor"`
	Theme      string          `yaml:"theme,omitempty"`
}

type FunctionConfig struct {
	Name string `yaml:"name"`
	// Branch is phi of the logarithm branch (phi, phi+2pi].
	Branch float64     `yaml:"branch"`
	Matrix [][]float64 `yaml:"matrix,omitempty"`
}

type DomainConfig struct {
	X Limits `yaml:"x"`
	Y Limits `yaml:"y"`
}

type GridConfig struct {
	Separation float64 `yaml:"separation"`
	Step       float64 `yaml:"step"`
}

type ColorConfig struct {
	Step  float64      `yaml:"step"`
	Power float64      `yaml:"power"`
	Clip  float64      `yaml:"clip,omitempty"`
	Size  plot.Options `yaml:"figure"`
}

type AnimationConfig struct {
	Seconds float64 `yaml:"seconds"`
	FPS     int     `yaml:"fps"`
	Reverse bool    `yaml:"reverse"`
	// GIFFallback writes a GIF when ffmpeg is missing.
	GIFFallback bool `yaml:"gif_fallback"`
}

type CursorConfig struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// CurveConfig is a user curve: a circle or an explicit list of points.
type CurveConfig struct {
	Circle *CircleConfig `yaml:"circle,omitempty"`
	Points [][2]float64  `yaml:"points,omitempty"`
	Style  plot.Style    `yaml:"style,omitempty"`
}

type CircleConfig struct {
	Center [2]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
	Points int        `yaml:"points,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Function: FunctionConfig{Name: DefaultFunction, Branch: -math.Pi},
		Domain:   DomainConfig{X: Limits{-4, 4}, Y: Limits{-4, 4}},
		Grid:     GridConfig{Separation: DefaultSeparation, Step: DefaultStep},
		Colors: ColorConfig{
			Step:  DefaultColorStep,
			Power: 1,
			Size:  colorize.DefaultFigure(),
		},
		Figure: plot.DefaultOptions(),
		Animation: AnimationConfig{
			Seconds: DefaultSeconds,
			FPS:     DefaultFPS,
		},
		Snapshots: []float64{0, 0.3, 1},
		Output:    DefaultOutput,
		Cursor:    CursorConfig{OffsetX: cursor.DefaultOffsetX, OffsetY: cursor.DefaultOffsetY},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// the values of base. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that would otherwise fail deep inside
// rendering.
func (c *Config) Validate() error {
	var errs []error
	check := func(cond bool, format string, args ...any) {
		if !cond {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	if _, err := c.Func(); err != nil {
		errs = append(errs, err)
	}
	for name, l := range map[string]Limits{"domain.x": c.Domain.X, "domain.y": c.Domain.Y} {
		if err := l.Interval().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.PlotLimits != nil {
		for name, l := range map[string]Limits{"plot_limits.x": c.PlotLimits.X, "plot_limits.y": c.PlotLimits.Y} {
			if err := l.Interval().Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	check(c.Grid.Separation > 0, "grid.separation must be positive, got %g", c.Grid.Separation)
	check(c.Grid.Step > 0, "grid.step must be positive, got %g", c.Grid.Step)
	check(c.Colors.Step > 0, "colors.step must be positive, got %g", c.Colors.Step)
	check(c.Colors.Power > 0, "colors.power must be positive, got %g", c.Colors.Power)
	check(c.Colors.Clip >= 0, "colors.clip must not be negative, got %g", c.Colors.Clip)
	check(c.Animation.Seconds >= 0, "animation.seconds must not be negative, got %g", c.Animation.Seconds)
	check(c.Animation.FPS > 0, "animation.fps must be positive, got %d", c.Animation.FPS)
	for i, t := range c.Snapshots {
		check(t >= 0 && t <= 1, "snapshots[%d] must be in [0, 1], got %g", i, t)
	}
	for i, cv := range c.Curves {
		if _, err := cv.Samples(); err != nil {
			errs = append(errs, fmt.Errorf("curves[%d]: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Func resolves the configured function.
func (c *Config) Func() (functions.Func, error) {
	return functions.Lookup(c.Function.Name, functions.Params{
		Branch: c.Function.Branch,
		Matrix: c.Function.Matrix,
	})
}

func (c *Config) Encoder() colorize.Encoder {
	return colorize.Encoder{Power: c.Colors.Power, Clip: c.Colors.Clip}
}

func (c *Config) CursorOptions() []cursor.Option {
	return []cursor.Option{cursor.WithOffsets(c.Cursor.OffsetX, c.Cursor.OffsetY)}
}

// Samples returns the input points of the curve.
func (cv CurveConfig) Samples() ([]complex128, error) {
	switch {
	case cv.Circle != nil && len(cv.Points) > 0:
		return nil, errors.New("curve has both circle and points")
	case cv.Circle != nil:
		return cv.Circle.Samples()
	case len(cv.Points) > 0:
		pts := make([]complex128, len(cv.Points))
		for i, p := range cv.Points {
			pts[i] = complex(p[0], p[1])
		}
		return pts, nil
	}
	return nil, errors.New("curve needs a circle or points")
}

// Samples traces the circle once counter-clockwise from angle 0,
// repeating the first point at the end.
func (c CircleConfig) Samples() ([]complex128, error) {
	n := c.Points
	if n == 0 {
		n = DefaultCirclePts
	}
	if n < 2 {
		return nil, fmt.Errorf("circle needs at least 2 points, got %d", n)
	}
	if !(c.Radius > 0) {
		return nil, fmt.Errorf("circle radius must be positive, got %g", c.Radius)
	}

	angles := floats.Span(make([]float64, n), 0, 2*math.Pi)
	center := complex(c.Center[0], c.Center[1])
	pts := make([]complex128, n)
	for i, a := range angles {
		pts[i] = center + complex(c.Radius*math.Cos(a), c.Radius*math.Sin(a))
	}
	return pts, nil
}
