package ripple

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the transparent overlay the planes are rendered into. It is
// sized to the viewport and only changes size through Resize.
type Surface struct {
	image *ebiten.Image
	w, h  int
	imgOp ebiten.DrawImageOptions
}

// NewSurface creates an overlay of the given size.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the overlay when the size changes.
func (s *Surface) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if s.image != nil && s.w == w && s.h == h {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
	}
	s.image = ebiten.NewImage(w, h)
	s.w, s.h = w, h
}

// Image returns the underlying *ebiten.Image.
func (s *Surface) Image() *ebiten.Image { return s.image }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.w }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.h }

// Clear fills the surface with transparent black.
func (s *Surface) Clear() { s.image.Clear() }

// DrawTo composites the surface over dst at the origin.
func (s *Surface) DrawTo(dst *ebiten.Image) {
	s.imgOp.GeoM.Reset()
	dst.DrawImage(s.image, &s.imgOp)
}

// --- White pixel singleton (no sync.Once: ripple is single-threaded) ---

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white pixel image, used for
// placeholders and the HUD backdrop.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
