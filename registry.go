package ripple

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

var (
	// ErrMissingTexture reports an element whose source has no preloaded
	// texture. It means the preloader and the page disagree, which is a
	// programming error.
	ErrMissingTexture = errors.New("ripple: missing preloaded texture")
	// ErrAlreadyBuilt is returned by a second Registry.Build call.
	ErrAlreadyBuilt = errors.New("ripple: planes already built")
)

// MissingTextureError identifies the element source that had no texture.
type MissingTextureError struct {
	Source string
}

func (e *MissingTextureError) Error() string {
	return fmt.Sprintf("ripple: no preloaded texture for %q", e.Source)
}

func (e *MissingTextureError) Unwrap() error { return ErrMissingTexture }

// DisplacementLoader fetches the displacement map shared by all planes.
type DisplacementLoader func() (image.Image, error)

// Registry binds each page image to exactly one plane.
type Registry struct {
	ctx          *Context
	displacement DisplacementLoader

	planes    []*Plane
	byElement map[Element]*Plane
	built     bool

	dispCache map[image.Point]*ebiten.Image
}

// NewRegistry creates an empty registry. load may be nil, in which case a
// neutral displacement map is used.
func NewRegistry(ctx *Context, load DisplacementLoader) *Registry {
	return &Registry{
		ctx:          ctx,
		displacement: load,
		byElement:    make(map[Element]*Plane),
		dispCache:    make(map[image.Point]*ebiten.Image),
	}
}

// Build creates one plane per element. It must be called exactly once, after
// every texture has been preloaded. A missing texture fails the whole build
// before any element is touched.
func (r *Registry) Build(elements []Element, textures map[string]*ebiten.Image, direction float64) ([]*Plane, error) {
	if r.built {
		return nil, ErrAlreadyBuilt
	}
	for _, el := range elements {
		if textures[el.Source()] == nil {
			return nil, &MissingTextureError{Source: el.Source()}
		}
	}
	r.built = true

	disp := r.loadDisplacement()
	geom := newPlaneGeometry(PlaneSegments, PlaneSegments)

	for _, el := range elements {
		if _, dup := r.byElement[el]; dup {
			continue
		}
		tex := textures[el.Source()]
		p := &Plane{
			Element:  el,
			Geometry: geom,
			Uniforms: newUniforms(tex, r.fitDisplacement(disp, tex.Bounds().Size()), direction),
		}
		el.Hide()
		p.hoverSub = el.OnHover(func(hovered bool) {
			p.Hovered = hovered
		})
		r.planes = append(r.planes, p)
		r.byElement[el] = p
	}

	r.ctx.log.debugf("built %d planes (%d displacement sizes)", len(r.planes), len(r.dispCache))
	return r.planes, nil
}

// loadDisplacement fetches the shared displacement map once per Build. A
// failure falls back to a neutral map.
func (r *Registry) loadDisplacement() image.Image {
	if r.displacement != nil {
		img, err := r.displacement()
		if err == nil && img != nil {
			return img
		}
		if err != nil {
			r.ctx.log.warnf("displacement: %v (using neutral map)", err)
		}
	}
	return neutralDisplacement()
}

// fitDisplacement returns the displacement map scaled to size. Planes with
// equally sized textures share one image.
func (r *Registry) fitDisplacement(src image.Image, size image.Point) *ebiten.Image {
	if img, ok := r.dispCache[size]; ok {
		return img
	}
	var fitted image.Image = src
	if src.Bounds().Size() != size {
		dst := image.NewRGBA(image.Rectangle{Max: size})
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		fitted = dst
	}
	img := ebiten.NewImageFromImage(fitted)
	r.dispCache[size] = img
	return img
}

// neutralDisplacement is a 1x1 mid-grey map: zero offset in the shader.
func neutralDisplacement() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	return img
}

// Planes returns every plane in build order. The returned slice MUST NOT be
// mutated.
func (r *Registry) Planes() []*Plane { return r.planes }

// Len returns the number of planes.
func (r *Registry) Len() int { return len(r.planes) }

// Built reports whether Build has succeeded.
func (r *Registry) Built() bool { return r.built }

// Lookup returns the plane bound to el.
func (r *Registry) Lookup(el Element) (*Plane, bool) {
	p, ok := r.byElement[el]
	return p, ok
}

// Hovered returns the number of planes currently hovered.
func (r *Registry) Hovered() int {
	n := 0
	for _, p := range r.planes {
		if p.Hovered {
			n++
		}
	}
	return n
}

// Dispose removes every hover listener and releases the displacement maps.
// Textures belong to the caller and are left untouched.
func (r *Registry) Dispose() {
	for _, p := range r.planes {
		p.hoverSub.Remove()
		p.Hovered = false
	}
	for size, img := range r.dispCache {
		img.Deallocate()
		delete(r.dispCache, size)
	}
	r.planes = nil
	clear(r.byElement)
}
