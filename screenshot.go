package ripple

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The file is written to Config.ScreenshotDir
// with a timestamped name, as PNG or WebP depending on
// Config.ScreenshotFormat. Safe to call from Update or Draw.
func (e *Effect) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Effect.Draw.
func (e *Effect) flushScreenshots(screen *ebiten.Image) {
	if len(e.screenshotQueue) == 0 {
		return
	}
	cfg := e.ctx.Config

	if err := os.MkdirAll(cfg.ScreenshotDir, 0o755); err != nil {
		e.ctx.log.warnf("screenshot: mkdir %s: %v", cfg.ScreenshotDir, err)
		e.screenshotQueue = e.screenshotQueue[:0]
		return
	}

	img := readFrame(screen)
	stamp := time.Now().Format("20060102_150405")
	ext := cfg.ScreenshotFormat.ext()

	for _, label := range e.screenshotQueue {
		path := filepath.Join(cfg.ScreenshotDir, fmt.Sprintf("%s_%s%s", stamp, sanitizeLabel(label), ext))
		if err := writeImage(path, img, cfg.ScreenshotFormat); err != nil {
			e.ctx.log.warnf("screenshot: %v", err)
			continue
		}
		e.ctx.log.debugf("screenshot %s", path)
	}

	e.screenshotQueue = e.screenshotQueue[:0]
}

// readFrame copies screen into a straight-alpha image.
func readFrame(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(img.Pix, pixels)
	return img
}

// unpremultiply converts premultiplied RGBA in src to straight alpha in dst.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

func (f ScreenshotFormat) ext() string {
	if f == ScreenshotWebP {
		return ".webp"
	}
	return ".png"
}

// writeImage encodes img to path in the given format.
func writeImage(path string, img image.Image, format ScreenshotFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if format == ScreenshotWebP {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
