package ripple

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Element is an image on the host page. Its box keeps driving layout after
// the effect hides it.
type Element interface {
	// Source is the URL the image was loaded from. Read once at startup.
	Source() string
	// Rect is the element's layout box relative to the viewport, without the
	// virtual scroller's translation applied.
	Rect() Rect
	// Hide makes the element invisible while keeping its box in the layout.
	Hide()
	// OnHover registers fn for pointer enter (true) and leave (false).
	OnHover(fn func(hovered bool)) CallbackHandle
}

// Default page layout, in viewport fractions and pixels.
const (
	defaultColumnWidth = 0.55
	defaultGap         = 96.0
	defaultMargin      = 120.0
	defaultAspect      = 4.0 / 3.0
)

// ImageElement is the Page's implementation of Element.
type ImageElement struct {
	src     string
	rect    Rect
	natural Vec2
	image   *ebiten.Image
	hidden  bool
	hovered bool
	hover   handlerList[func(bool)]
}

// Source returns the image URL.
func (el *ImageElement) Source() string { return el.src }

// Rect returns the layout box.
func (el *ImageElement) Rect() Rect { return el.rect }

// Hide makes the element invisible. Its box stays in the layout.
func (el *ImageElement) Hide() { el.hidden = true }

// Hidden reports whether Hide was called.
func (el *ImageElement) Hidden() bool { return el.hidden }

// Hovered reports whether the pointer is currently over the element.
func (el *ImageElement) Hovered() bool { return el.hovered }

// OnHover registers a hover enter/leave listener.
func (el *ImageElement) OnHover(fn func(hovered bool)) CallbackHandle {
	return el.hover.add(fn)
}

// setHovered updates the hover state and fires listeners on change.
func (el *ImageElement) setHovered(h bool) {
	if el.hovered == h {
		return
	}
	el.hovered = h
	for _, l := range el.hover.items {
		l.fn(h)
	}
}

// Page is a minimal host document: image elements stacked in a centered
// column. It owns layout and hover detection; the effect only reads it.
type Page struct {
	// Background is the page color drawn under the images.
	Background Color
	// ColumnWidth is the image width as a fraction of the viewport width.
	ColumnWidth float64
	// Gap is the vertical space between images; Margin pads the top and
	// bottom of the document.
	Gap, Margin float64

	elements []*ImageElement
	width    float64
	height   float64
	content  float64
	relayout handlerList[func(*Page)]
}

// NewPage creates an empty page for a viewport of the given size.
func NewPage(w, h float64) *Page {
	return &Page{
		Background:  Color{R: 0.06, G: 0.06, B: 0.07, A: 1},
		ColumnWidth: defaultColumnWidth,
		Gap:         defaultGap,
		Margin:      defaultMargin,
		width:       w,
		height:      h,
	}
}

// AddImage appends an image element for src and returns it.
func (p *Page) AddImage(src string) *ImageElement {
	el := &ImageElement{src: src}
	p.elements = append(p.elements, el)
	p.layout()
	return el
}

// Images returns the page's image elements in document order.
// The returned slice MUST NOT be mutated.
func (p *Page) Images() []*ImageElement { return p.elements }

// Elements returns the image elements as Element values.
func (p *Page) Elements() []Element {
	out := make([]Element, len(p.elements))
	for i, el := range p.elements {
		out[i] = el
	}
	return out
}

// Sources returns the source URL of every image, in document order.
func (p *Page) Sources() []string {
	out := make([]string, len(p.elements))
	for i, el := range p.elements {
		out[i] = el.src
	}
	return out
}

// SetImage attaches the decoded image to every element with the given source
// and reflows the page using its natural size.
func (p *Page) SetImage(src string, img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for _, el := range p.elements {
		if el.src == src {
			el.image = img
			el.natural = Vec2{X: float64(b.Dx()), Y: float64(b.Dy())}
		}
	}
	p.layout()
}

// SetViewport resizes the viewport and reflows the page.
func (p *Page) SetViewport(w, h float64) {
	p.width, p.height = w, h
	p.layout()
}

// Viewport returns the current viewport size.
func (p *Page) Viewport() Vec2 { return Vec2{X: p.width, Y: p.height} }

// ContentHeight returns the height of the whole document.
func (p *Page) ContentHeight() float64 { return p.content }

// ScrollLimit returns the largest scroll position that keeps the document
// bottom inside the viewport.
func (p *Page) ScrollLimit() float64 {
	return max(p.content-p.height, 0)
}

// OnLayout registers fn to run after every reflow.
func (p *Page) OnLayout(fn func(*Page)) CallbackHandle {
	return p.relayout.add(fn)
}

// layout stacks the elements top to bottom.
func (p *Page) layout() {
	w := p.width * p.ColumnWidth
	x := (p.width - w) / 2
	y := p.Margin
	for i, el := range p.elements {
		aspect := defaultAspect
		if el.natural.X > 0 && el.natural.Y > 0 {
			aspect = el.natural.X / el.natural.Y
		}
		h := w / aspect
		el.rect = Rect{X: x, Y: y, Width: w, Height: h}
		y += h
		if i < len(p.elements)-1 {
			y += p.Gap
		}
	}
	p.content = y + p.Margin

	for _, h := range p.relayout.items {
		h.fn(p)
	}
}

// PointerAt updates hover state for a pointer at viewport position (x, y)
// given the content translation offset. Every element the pointer is over is
// hovered; overlapping elements are hovered together.
func (p *Page) PointerAt(x, y, offset float64) {
	for _, el := range p.elements {
		el.setHovered(el.rect.Translate(0, offset).Contains(x, y))
	}
}

// PointerLeave clears the hover state of every element.
func (p *Page) PointerLeave() {
	for _, el := range p.elements {
		el.setHovered(false)
	}
}

// Draw paints the background and every visible image, translated by offset.
// Elements without a decoded image are drawn as placeholders.
func (p *Page) Draw(screen *ebiten.Image, offset float64) {
	screen.Fill(p.Background.toRGBA())

	var op ebiten.DrawImageOptions
	view := Rect{Width: p.width, Height: p.height}
	for _, el := range p.elements {
		if el.hidden {
			continue
		}
		r := el.rect.Translate(0, offset)
		if !r.Intersects(view) {
			continue
		}
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterLinear
		src := el.image
		if src == nil {
			src = whitePixel()
			op.ColorScale.Scale(0.16, 0.16, 0.18, 1)
		}
		b := src.Bounds()
		op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
		op.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(src, &op)
	}
}
