package ripple

// Layouter is the host document's resize hook.
type Layouter interface {
	SetViewport(w, h float64)
}

// Router routes pointer and resize events to the planes they affect.
type Router struct {
	registry *Registry
	tracker  *ScrollTracker
	mapper   *Mapper
	camera   *Camera
	surface  *Surface
	layout   Layouter
}

// NewRouter creates a router. layout may be nil when the host reflows on its
// own.
func NewRouter(ctx *Context, registry *Registry, tracker *ScrollTracker, mapper *Mapper, layout Layouter) *Router {
	return &Router{
		registry: registry,
		tracker:  tracker,
		mapper:   mapper,
		camera:   ctx.Camera,
		surface:  ctx.Surface,
		layout:   layout,
	}
}

// PointerMove writes the pointer's UV into every hovered plane and restarts
// its intensity at 1. Planes that are not hovered are left untouched. It
// returns the number of planes updated.
func (r *Router) PointerMove(x, y float64) int {
	offset := r.tracker.CurrentOffset()
	n := 0
	for _, p := range r.registry.Planes() {
		if !p.Hovered {
			continue
		}
		uv, ok := pointerUV(p.Element.Rect().Translate(0, offset), x, y)
		if !ok {
			continue
		}
		p.Uniforms.Mouse = uv
		p.Uniforms.Intensity = 1
		n++
	}
	return n
}

// pointerUV maps a viewport point into the rectangle's UV space with the
// vertical axis flipped, clamped to [0,1]². ok is false for an empty rect.
func pointerUV(r Rect, x, y float64) (Vec2, bool) {
	if r.Width <= 0 || r.Height <= 0 {
		return Vec2{}, false
	}
	u := (x - r.X) / r.Width
	v := 1 - (y-r.Y)/r.Height
	return Vec2{X: clamp01(u), Y: clamp01(v)}, true
}

// Resize applies a new viewport size: camera aspect, overlay surface, host
// layout, then an immediate reposition of every plane.
func (r *Router) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.camera.SetViewport(float64(w), float64(h))
	if r.surface != nil {
		r.surface.Resize(w, h)
	}
	if r.layout != nil {
		r.layout.SetViewport(float64(w), float64(h))
	}
	r.mapper.place(r.registry.Planes(), r.tracker.CurrentOffset())
}
