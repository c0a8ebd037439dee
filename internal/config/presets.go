package config

import (
	"math"
	"sort"

	"github.com/san-kum/planeviz/internal/plot"
)

func unitCircles() []CurveConfig {
	return []CurveConfig{
		{Circle: &CircleConfig{Radius: 1, Points: 200}, Style: plot.Style{Width: 4}},
		{Circle: &CircleConfig{Radius: 0.5, Points: 200}, Style: plot.Style{Width: 4}},
	}
}

var Presets = map[string]func() *Config{
	// Joukowsky map of a 8x8 grid seen through a 4x4 window, with the unit
	// circle collapsing onto [-1, 1].
	"holomorphic": func() *Config {
		cfg := DefaultConfig()
		cfg.Function = FunctionConfig{Name: "joukowsky", Branch: -math.Pi}
		cfg.PlotLimits = &DomainConfig{X: Limits{-2, 2}, Y: Limits{-2, 2}}
		cfg.Curves = append(unitCircles(), CurveConfig{
			Circle: &CircleConfig{Center: [2]float64{0, 1}, Radius: 0.1, Points: 200},
			Style:  plot.Style{Width: 2},
		})
		cfg.Animation = AnimationConfig{Seconds: 16, FPS: 60, Reverse: true}
		cfg.Output = "output/sample_function"
		return cfg
	},
	"shear": func() *Config {
		cfg := DefaultConfig()
		cfg.Function = FunctionConfig{Name: "linear", Matrix: [][]float64{{2, 2}, {0, 2}}}
		cfg.PlotLimits = &DomainConfig{X: Limits{-4, 4}, Y: Limits{-4, 4}}
		cfg.Curves = unitCircles()
		cfg.Animation = AnimationConfig{Seconds: 8, FPS: 30, Reverse: true}
		cfg.Output = "output/shear_transformation"
		return cfg
	},
	"joukowsky-colors": func() *Config {
		cfg := DefaultConfig()
		cfg.Domain = DomainConfig{X: Limits{-2, 2}, Y: Limits{-2, 2}}
		cfg.Colors.Step = 0.005
		cfg.Colors.Power = 0.25
		cfg.Colors.Clip = 4
		cfg.Output = "output/sample_function_colors"
		return cfg
	},
	"log-branch": func() *Config {
		cfg := DefaultConfig()
		cfg.Function = FunctionConfig{Name: "log", Branch: 0}
		cfg.Domain = DomainConfig{X: Limits{-2, 2}, Y: Limits{-2, 2}}
		cfg.Colors.Step = 0.01
		cfg.Output = "output/log_branch"
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
