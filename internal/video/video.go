// Package video writes rendered frames to animation files: MP4 through an
// external ffmpeg process and GIF in process.
package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/san-kum/planeviz/internal/plot"
)

var (
	ErrFFmpegUnavailable = errors.New("video: ffmpeg is not installed")
	ErrClosed            = errors.New("video: writer closed")
)

// Writer consumes frames in order. Close finalises the file.
type Writer interface {
	WriteFrame(img image.Image) error
	Close() error
}

// FFmpegAvailable reports whether an ffmpeg binary answers on PATH.
func FFmpegAvailable() bool {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return false
	}
	cmd := exec.Command(bin, "-version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	_ = cmd.Run()
	return bytes.Contains(out.Bytes(), []byte("ffmpeg version"))
}

type options struct {
	fallback bool
	logger   *slog.Logger
}

type Option func(*options)

// WithGIFFallback writes a GIF next to the requested path when ffmpeg is
// missing instead of failing.
func WithGIFFallback() Option {
	return func(o *options) { o.fallback = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Create opens a writer for path. Paths ending in ".gif" get a GIF writer;
// anything else is an MP4 with ".mp4" appended when missing. The returned
// string is the path that will be written.
func Create(path string, fps int, opts ...Option) (Writer, string, error) {
	o := options{logger: gg.Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if fps <= 0 {
		return nil, "", fmt.Errorf("video: fps must be positive, got %d", fps)
	}

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		w, err := NewGIFWriter(path, fps)
		return w, path, err
	}

	path = plot.EnsureExt(path, ".mp4")
	if !FFmpegAvailable() {
		if !o.fallback {
			return nil, "", ErrFFmpegUnavailable
		}
		gifPath := strings.TrimSuffix(path, ".mp4") + ".gif"
		o.logger.Info("ffmpeg not installed, writing gif instead", "path", gifPath)
		w, err := NewGIFWriter(gifPath, fps)
		return w, gifPath, err
	}

	w, err := NewFFmpegWriter(path, fps)
	if err != nil {
		return nil, "", err
	}
	o.logger.Debug("ffmpeg started", "path", path, "fps", fps)
	return w, path, nil
}
