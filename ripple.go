package ripple

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for pointer positions, UVs and sizes.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world-space vector. The camera looks down -Z; +Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle in viewport pixels. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Transform is the world-space placement of a plane: a non-uniform scale of
// the unit plane followed by a translation.
type Transform struct {
	Scale    Vec3
	Position Vec3
}

// Apply maps a point on the unit plane into world space.
func (t Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: p.X*t.Scale.X + t.Position.X,
		Y: p.Y*t.Scale.Y + t.Position.Y,
		Z: p.Z*t.Scale.Z + t.Position.Z,
	}
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
