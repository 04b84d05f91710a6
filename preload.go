package ripple

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// LoadError identifies the asset that failed a preload batch.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Preloader decodes a batch of images from an fs.FS. A batch either fully
// succeeds or fails as a whole.
type Preloader struct {
	FS fs.FS
	// Limit caps concurrent decodes. Zero means unlimited.
	Limit int
}

// Load decodes every URL concurrently. On success the result maps each URL
// to its decoded image. On failure no images are returned and the error is a
// *LoadError for the first URL that failed; the remaining decodes are
// cancelled. Nothing is retried.
func (p *Preloader) Load(ctx context.Context, urls []string) (map[string]image.Image, error) {
	out := make(map[string]image.Image, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if p.Limit > 0 {
		g.SetLimit(p.Limit)
	}

	seen := make(map[string]bool, len(urls))
	for _, url := range urls {
		if seen[url] {
			continue
		}
		seen[url] = true

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &LoadError{URL: url, Err: err}
			}
			img, err := decodeAsset(p.FS, url)
			if err != nil {
				return &LoadError{URL: url, Err: err}
			}
			mu.Lock()
			out[url] = img
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAsset opens name in fsys and decodes it by extension, falling back to
// format sniffing.
func decodeAsset(fsys fs.FS, name string) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("no asset filesystem")
	}
	f, err := fsys.Open(strings.TrimPrefix(path.Clean("/"+name), "/"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeImage(f, path.Ext(name))
}

func decodeImage(r io.Reader, ext string) (image.Image, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".webp":
		return webp.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".tga":
		return tga.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}

// newTextures uploads decoded images as GPU textures. Must run on the game
// goroutine.
func newTextures(decoded map[string]image.Image) map[string]*ebiten.Image {
	out := make(map[string]*ebiten.Image, len(decoded))
	for url, img := range decoded {
		out[url] = ebiten.NewImageFromImage(img)
	}
	return out
}
