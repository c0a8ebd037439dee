package video

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
)

// FFmpegWriter pipes PNG frames into an ffmpeg child encoding H.264.
type FFmpegWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	enc    png.Encoder
	frames int
	closed bool
}

func NewFFmpegWriter(path string, fps int) (*FFmpegWriter, error) {
	w := &FFmpegWriter{enc: png.Encoder{CompressionLevel: png.BestSpeed}}
	w.cmd = exec.Command("ffmpeg",
		"-y", "-loglevel", "error",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(fps),
		"-c:v", "png",
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		path,
	)
	w.cmd.Stderr = &w.stderr

	stdin, err := w.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdin: %w", err)
	}
	w.stdin = stdin
	if err := w.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return w, nil
}

func (w *FFmpegWriter) WriteFrame(img image.Image) error {
	if w.closed {
		return ErrClosed
	}
	// ffmpeg's stderr is only safe to read after Wait, so Close reports it.
	if err := w.enc.Encode(w.stdin, img); err != nil {
		return fmt.Errorf("frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *FFmpegWriter) Frames() int { return w.frames }

// Close ends the input stream and waits for ffmpeg to finish the file.
func (w *FFmpegWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.stdin.Close(); err != nil {
		_ = w.cmd.Wait()
		return fmt.Errorf("close ffmpeg stdin: %w", err)
	}
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, w.stderr.String())
	}
	return nil
}
