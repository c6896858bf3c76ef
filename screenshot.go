package doodle

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a capture of the next drawn frame. The PNG is written
// to Options.ScreenshotDir as "<label>_<frame>.png", so scripted runs
// produce stable file names.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshots returns the output paths of every queued capture and
// clears the queue. Renderers that do not draw through Ebitengine use it to
// write the captures themselves.
func (s *Scene) TakeScreenshots() []string {
	if len(s.screenshotQueue) == 0 {
		return nil
	}
	paths := make([]string, len(s.screenshotQueue))
	for i, label := range s.screenshotQueue {
		paths[i] = filepath.Join(s.opts.ScreenshotDir, screenshotName(label, s.frame))
	}
	s.screenshotQueue = s.screenshotQueue[:0]
	return paths
}

// flushScreenshots writes every queued capture of screen. Failures are
// logged and dropped; a missing screenshot never stops the game.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	paths := s.TakeScreenshots()
	if len(paths) == 0 {
		return
	}

	dir := s.opts.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Warn("screenshot dir", slog.String("dir", dir), slog.Any("err", err))
		return
	}

	img := snapshot(screen)
	for _, path := range paths {
		if err := writePNG(path, img); err != nil {
			Logger().Warn("screenshot failed", slog.Any("err", err))
			continue
		}
		Logger().Info("screenshot written", slog.String("path", path))
	}
}

// snapshot copies the screen's pixels. Ebitengine stores premultiplied
// RGBA, which is exactly image.RGBA's layout.
func snapshot(screen *ebiten.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, screen.Bounds().Dx(), screen.Bounds().Dy()))
	screen.ReadPixels(out.Pix)
	return out
}

func screenshotName(label string, frame uint64) string {
	return fmt.Sprintf("%s_%06d.png", sanitizeLabel(label), frame)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("doodle: screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("doodle: screenshot %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', maps everything else
// to '_', and names empty labels "shot".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
