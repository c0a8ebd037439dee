package transform

import (
	"context"
	"fmt"

	"github.com/san-kum/planeviz/internal/export"
	"github.com/san-kum/planeviz/internal/plot"
	"github.com/san-kum/planeviz/internal/video"
)

const tickTarget = 8

// Snapshot draws every curve at transition value t on one equal-aspect
// axes. The caller owns the returned figure.
func (t *Transformer) Snapshot(tv float64, opts plot.Options) (*plot.Figure, error) {
	fig := plot.NewFigure(opts)
	if err := t.draw(fig, tv); err != nil {
		fig.Close()
		return nil, err
	}
	return fig, nil
}

func (t *Transformer) draw(fig *plot.Figure, tv float64) error {
	xlim, ylim := t.Limits()
	ax := fig.Subplot(1, 1, 1, xlim, ylim, true)
	for i, c := range t.curves {
		if err := ax.Plot(c.At(tv), c.Style); err != nil {
			return fmt.Errorf("curve %d: %w", i, err)
		}
	}
	return ax.Frame(plot.NiceTicks(xlim, tickTarget), plot.NiceTicks(ylim, tickTarget))
}

// SaveSnapshot renders t and writes a PNG, appending ".png" when missing.
// It returns the path written.
func (t *Transformer) SaveSnapshot(path string, tv float64, opts plot.Options) (string, error) {
	fig, err := t.Snapshot(tv, opts)
	if err != nil {
		return "", err
	}
	defer fig.Close()

	path, err = fig.SavePNG(path)
	if err != nil {
		return "", err
	}
	t.logger.Info("snapshot saved", "path", path, "t", tv)
	return path, nil
}

// Progress is told about every rendered frame.
type Progress func(frame, total int)

// Animate renders the eased frame schedule into w. It stops between frames
// when ctx is cancelled. The writer is not closed.
func (t *Transformer) Animate(ctx context.Context, w video.Writer, seconds float64, fps int, reverse bool, opts plot.Options, progress Progress) error {
	times, err := FrameTimes(seconds, fps, reverse)
	if err != nil {
		return err
	}
	t.logger.Debug("animation started", "frames", len(times), "fps", fps, "reverse", reverse)

	for i, tv := range times {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("animation stopped at frame %d: %w", i, err)
		}

		fig := plot.NewFigure(opts)
		err := t.draw(fig, Ease(tv))
		if err == nil {
			err = w.WriteFrame(fig.Image())
		}
		fig.Close()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		if progress != nil {
			progress(i+1, len(times))
		}
	}
	return nil
}

// SVG renders the curves at t as a width x height SVG document.
func (t *Transformer) SVG(tv float64, width, height int) string {
	xlim, ylim := t.Limits()
	lines := make([]export.Polyline, len(t.curves))
	for i, c := range t.curves {
		lines[i] = export.Polyline{Points: c.At(tv), Style: c.Style}
	}
	return export.CurvesToSVG(lines, xlim, ylim, width, height)
}
