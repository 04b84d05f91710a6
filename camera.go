package ripple

import "math"

// Camera is a perspective camera placed on the +Z axis looking down -Z at the
// plane layer (z = 0). Planes are laid out in world units; the camera maps
// them into viewport pixels.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clip distances along the view axis.
	Near, Far float64
	// Z is the camera's distance from the origin along the view axis.
	Z float64
	// Viewport is the pixel rectangle the camera renders into.
	Viewport Rect
}

// newCamera creates a Camera from the effect configuration and an initial
// viewport size.
func newCamera(cfg Config, w, h float64) *Camera {
	c := &Camera{
		FOV:  cfg.FOV,
		Near: cfg.Near,
		Far:  cfg.Far,
		Z:    cfg.Depth,
	}
	c.SetViewport(w, h)
	return c
}

// SetViewport updates the pixel viewport and the aspect ratio derived from it.
// Degenerate sizes keep the previous aspect.
func (c *Camera) SetViewport(w, h float64) {
	c.Viewport = Rect{Width: w, Height: h}
	if w > 0 && h > 0 {
		c.Aspect = w / h
	}
}

// halfHeightAt returns half the visible world height at distance dist in
// front of the camera.
func (c *Camera) halfHeightAt(dist float64) float64 {
	return math.Tan(c.FOV*math.Pi/360) * dist
}

// WorldToScreen projects a world point into viewport pixels. ok is false when
// the point lies at or behind the near plane, or beyond the far plane.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy float64, ok bool) {
	dist := c.Z - p.Z
	if dist <= c.Near || dist > c.Far {
		return 0, 0, false
	}
	halfH := c.halfHeightAt(dist)
	halfW := halfH * c.Aspect
	ndcX := p.X / halfW
	ndcY := p.Y / halfH
	sx = c.Viewport.X + (ndcX+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ndcY)/2*c.Viewport.Height
	return sx, sy, true
}

// ScreenToWorld unprojects a viewport pixel onto the plane layer (z = 0).
func (c *Camera) ScreenToWorld(sx, sy float64) Vec3 {
	halfH := c.halfHeightAt(c.Z)
	halfW := halfH * c.Aspect
	ndcX := (sx-c.Viewport.X)/c.Viewport.Width*2 - 1
	ndcY := 1 - (sy-c.Viewport.Y)/c.Viewport.Height*2
	return Vec3{X: ndcX * halfW, Y: ndcY * halfH}
}
