// Package export writes curve plots and terminal previews as SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
	"github.com/san-kum/planeviz/internal/viz"
)

// Polyline is one curve to export.
type Polyline struct {
	Points []complex128
	Style  plot.Style
}

func hexColor(name string) string {
	c := plot.ParseColor(name)
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255)))
}

// CurvesToSVG draws lines over the rectangle xlim x ylim, stretched to
// width x height. Non-finite points break a line into separate subpaths.
func CurvesToSVG(lines []Polyline, xlim, ylim grid.Interval, width, height int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	sx := float64(width) / xlim.Span()
	sy := float64(height) / ylim.Span()
	guard := 8 * math.Max(float64(width), float64(height))

	cycle := 0
	for _, l := range lines {
		col := l.Style.Color
		if col == "" {
			col = plot.Cycle[cycle%len(plot.Cycle)]
			cycle++
		}

		var d strings.Builder
		open := false
		for _, p := range l.Points {
			x := (real(p) - xlim.Lo) * sx
			y := float64(height) - (imag(p)-ylim.Lo)*sy
			if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > guard || math.Abs(y) > guard {
				open = false
				continue
			}
			if open {
				d.WriteString(fmt.Sprintf(" L%.2f,%.2f", x, y))
			} else {
				d.WriteString(fmt.Sprintf(" M%.2f,%.2f", x, y))
				open = true
			}
		}
		if d.Len() == 0 {
			continue
		}

		lw := l.Style.Width
		if lw <= 0 {
			lw = plot.DefaultLineWidth
		}
		alpha := l.Style.Alpha
		if alpha <= 0 || alpha > 1 {
			alpha = 1
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%g" stroke-opacity="%g" stroke-linecap="round" d="%s"/>
`, hexColor(col), lw, alpha, strings.TrimSpace(d.String())))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ccff">
`, width, height, width, height))

	r := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
