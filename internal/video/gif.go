package video

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// GIFWriter quantises frames to the Plan 9 palette and encodes them all on
// Close.
type GIFWriter struct {
	path   string
	delay  int
	anim   gif.GIF
	closed bool
}

func NewGIFWriter(path string, fps int) (*GIFWriter, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("video: fps must be positive, got %d", fps)
	}
	delay := int(math.Round(100 / float64(fps)))
	if delay < 1 {
		delay = 1
	}
	return &GIFWriter{path: path, delay: delay, anim: gif.GIF{LoopCount: 0}}, nil
}

func (w *GIFWriter) WriteFrame(img image.Image) error {
	if w.closed {
		return ErrClosed
	}
	b := img.Bounds()
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, frame.Bounds(), img, b.Min)
	w.anim.Image = append(w.anim.Image, frame)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

// Frames returns the number of frames buffered so far.
func (w *GIFWriter) Frames() int { return len(w.anim.Image) }

func (w *GIFWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if len(w.anim.Image) == 0 {
		return fmt.Errorf("video: no frames for %s", w.path)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, &w.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close gif: %w", err)
	}
	return nil
}
