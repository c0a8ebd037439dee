package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/planeviz/internal/grid"
)

// Preview draws curves as Braille dots on a width x height cell canvas.
func Preview(curves [][]complex128, xlim, ylim grid.Interval, width, height int) *Canvas {
	c := NewCanvas(width, height)
	for _, pts := range curves {
		c.DrawCurve(pts, xlim, ylim)
	}
	return c
}

// RenderPreview frames a canvas with a title and the visible limits.
func RenderPreview(c *Canvas, title string, xlim, ylim grid.Interval) string {
	th := CurrentTheme
	body := lipgloss.NewStyle().Foreground(th.Primary).Render(strings.TrimRight(c.String(), "\n"))
	limits := MetricLabel.Render("x ") + MetricValue.Render(xlim.String()) +
		MetricLabel.Render("  y ") + MetricValue.Render(ylim.String())
	return BoxWithTitle(title, body+"\n"+limits, c.Width+2)
}
