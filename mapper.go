package ripple

import "math"

// Extent is the world-space size visible through the camera at a given depth.
type Extent struct {
	Width, Height float64
}

// Mapper converts between DOM-style pixel rectangles and world-space plane
// transforms. It holds no state besides the camera, so every call reflects
// the current layout and viewport.
type Mapper struct {
	camera *Camera
}

// NewMapper creates a mapper bound to the context's camera.
func NewMapper(ctx *Context) *Mapper {
	return &Mapper{camera: ctx.Camera}
}

// VisibleExtent returns the visible world size at depth along the view axis.
// A depth <= 0 means the camera's own depth.
//
//	height = 2 * tan(fov/2) * depth
//	width  = height * aspect
func (m *Mapper) VisibleExtent(depth float64) Extent {
	if depth <= 0 {
		depth = m.camera.Z
	}
	h := 2 * math.Tan(m.camera.FOV*math.Pi/360) * depth
	return Extent{Width: h * m.camera.Aspect, Height: h}
}

// Project maps a viewport-relative pixel rectangle and the current scroll
// offset into the transform of a unit plane at z = 0.
//
// The vertical center is rebuilt in page space (top + offset + h/2) before
// it is normalized, so the offset reported by the scroll tracker moves planes
// together with the content.
func (m *Mapper) Project(rect Rect, scrollOffset float64, extent Extent) Transform {
	vw, vh := m.camera.Viewport.Width, m.camera.Viewport.Height
	if vw <= 0 || vh <= 0 {
		return Transform{Scale: Vec3{Z: 1}}
	}

	x := (rect.X+rect.Width/2)/vw*2 - 1
	pageY := rect.Y + scrollOffset + rect.Height/2
	y := -(pageY/vh)*2 + 1

	return Transform{
		Scale: Vec3{
			X: rect.Width / vw * extent.Width,
			Y: rect.Height / vh * extent.Height,
			Z: 1,
		},
		Position: Vec3{
			X: x * extent.Width / 2,
			Y: y * extent.Height / 2,
		},
	}
}

// place recomputes the transform of every plane from its element's current
// rectangle. Called on each frame, scroll notification and resize.
func (m *Mapper) place(planes []*Plane, scrollOffset float64) {
	extent := m.VisibleExtent(0)
	for _, p := range planes {
		p.Transform = m.Project(p.Element.Rect(), scrollOffset, extent)
	}
}
