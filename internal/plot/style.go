package plot

import (
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
)

// DefaultLineWidth is the stroke width, in points, of a Style with no width.
const DefaultLineWidth = 1.5

// Style describes how a curve is stroked.
type Style struct {
	// Color is a name ("blue", "C3") or a hex string. Empty selects the
	// next colour of the axes cycle.
	Color string `yaml:"color,omitempty"`
	// Width is the line width in points.
	Width float64 `yaml:"width,omitempty"`
	// Alpha is the opacity in (0, 1]. Zero means opaque.
	Alpha float64 `yaml:"alpha,omitempty"`
}

func (s Style) width() float64 {
	if s.Width <= 0 {
		return DefaultLineWidth
	}
	return s.Width
}

func (s Style) alpha() float64 {
	if s.Alpha <= 0 || s.Alpha > 1 {
		return 1
	}
	return s.Alpha
}

// Cycle is the colour cycle used for curves without an explicit colour.
var Cycle = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var named = map[string]string{
	"blue":    "#0000ff",
	"red":     "#ff0000",
	"green":   "#008000",
	"black":   "#000000",
	"white":   "#ffffff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
}

// ParseColor resolves a colour name, a cycle reference ("C0".."C9") or a
// hex string. Unknown names resolve to black.
func ParseColor(name string) gg.RGBA {
	name = strings.ToLower(strings.TrimSpace(name))
	if hex, ok := named[name]; ok {
		return gg.Hex(hex)
	}
	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return gg.Hex(Cycle[name[1]-'0'])
	}
	if strings.HasPrefix(name, "#") {
		return gg.Hex(name)
	}
	return gg.Black
}

// EnsureExt appends ext to path unless path already ends with it.
func EnsureExt(path, ext string) string {
	if filepath.Ext(path) != ext {
		return path + ext
	}
	return path
}
