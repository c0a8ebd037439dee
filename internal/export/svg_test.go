package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/planeviz/internal/grid"
	"github.com/san-kum/planeviz/internal/plot"
	"github.com/san-kum/planeviz/internal/viz"
)

func TestCurvesToSVG(t *testing.T) {
	lim := grid.Interval{Lo: -1, Hi: 1}
	lines := []Polyline{
		{Points: []complex128{-1, 0, 1}, Style: plot.Style{Color: "red", Width: 2, Alpha: 0.5}},
		{Points: []complex128{-1i, complex(math.NaN(), 0), 1i}},
	}
	svg := CurvesToSVG(lines, lim, lim, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) || !strings.Contains(svg, `stroke-opacity="0.5"`) {
		t.Error("expected explicit style on the first path")
	}
	if !strings.Contains(svg, `stroke="`+plot.Cycle[0]+`"`) {
		t.Error("expected unstyled path to take the first cycle colour")
	}
	if !strings.Contains(svg, "M0.00,50.00 L100.00,50.00 L200.00,50.00") {
		t.Errorf("unexpected path geometry in %s", svg)
	}
	if strings.Count(svg, " M") != 1 || strings.Count(svg, `d="M`) != 2 {
		t.Error("NaN point should split the second curve into two subpaths")
	}
}

func TestCurvesToSVGSkipsEmpty(t *testing.T) {
	lim := grid.Interval{Lo: 0, Hi: 1}
	svg := CurvesToSVG([]Polyline{{Points: []complex128{complex(math.Inf(1), 0)}}}, lim, lim, 10, 10)
	if strings.Contains(svg, "<path") {
		t.Error("expected no path for a curve without finite points")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("expected 8x8 document for a 2x1 canvas at scale 2")
	}
}
