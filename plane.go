package ripple

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PlaneSegments is the subdivision of every plane along each axis. Fine
// enough for per-vertex displacement, coarse enough to stay cheap.
const PlaneSegments = 50

// Uniform names shared with the Kage program.
const (
	UniformMouse           = "Mouse"           // vec2, [0,1]², bottom-up
	UniformTime            = "Time"            // float, seconds
	UniformIntensity       = "Intensity"       // float, >= 0
	UniformScrollSpeed     = "ScrollSpeed"     // float, >= 0
	UniformScrollDirection = "ScrollDirection" // float, -1 or 1
)

// Uniforms is the per-plane shader input. Image and Displacement are
// immutable after construction; the rest is written by the animator and the
// interaction router.
type Uniforms struct {
	Image        *ebiten.Image
	Displacement *ebiten.Image

	Mouse           Vec2
	Time            float64
	Intensity       float64
	ScrollSpeed     float64
	ScrollDirection float64

	values     map[string]any
	mouseF32   [2]float32 // persistent buffer
	mouseSlice []float32  // persistent slice header into mouseF32
}

// newUniforms creates a uniform set with the pointer centered and no
// intensity or speed.
func newUniforms(img, disp *ebiten.Image, direction float64) *Uniforms {
	u := &Uniforms{
		Image:           img,
		Displacement:    disp,
		Mouse:           Vec2{X: 0.5, Y: 0.5},
		ScrollDirection: direction,
		values:          make(map[string]any, 5),
	}
	u.mouseSlice = u.mouseF32[:]
	u.values[UniformMouse] = u.mouseSlice
	return u
}

// shaderValues refreshes and returns the uniform map handed to Ebitengine.
// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
func (u *Uniforms) shaderValues() map[string]any {
	u.mouseF32[0] = float32(u.Mouse.X)
	u.mouseF32[1] = float32(u.Mouse.Y)
	u.values[UniformTime] = float32(u.Time)
	u.values[UniformIntensity] = float32(u.Intensity)
	u.values[UniformScrollSpeed] = float32(u.ScrollSpeed)
	u.values[UniformScrollDirection] = float32(u.ScrollDirection)
	return u.values
}

// VertexFunc displaces a vertex of the unit plane before it is placed and
// projected. local lies in [-0.5, 0.5]² at z = 0; uv has its origin at the
// top-left of the texture.
type VertexFunc func(local Vec3, uv Vec2, u *Uniforms) Vec3

// ScrollBend returns a VertexFunc that curves planes against the scroll
// direction: the middle columns lag behind the edges by up to strength
// plane heights at unit scroll speed.
func ScrollBend(strength float64) VertexFunc {
	return func(local Vec3, uv Vec2, u *Uniforms) Vec3 {
		speed := math.Min(u.ScrollSpeed, 2)
		local.Y += math.Sin(uv.X*math.Pi) * strength * speed * u.ScrollDirection
		return local
	}
}

// Geometry is a subdivided unit plane centered on the origin, facing +Z.
// It is immutable and shared by every plane of a registry.
type Geometry struct {
	Cols, Rows int
	Local      []Vec3
	UV         []Vec2
	Indices    []uint16
}

// newPlaneGeometry builds a cols x rows grid. Vertices run row by row from
// the top-left corner.
func newPlaneGeometry(cols, rows int) *Geometry {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	vcols := cols + 1
	vrows := rows + 1
	g := &Geometry{
		Cols:    cols,
		Rows:    rows,
		Local:   make([]Vec3, vcols*vrows),
		UV:      make([]Vec2, vcols*vrows),
		Indices: make([]uint16, cols*rows*6),
	}

	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			u := float64(c) / float64(cols)
			v := float64(r) / float64(rows)
			g.UV[idx] = Vec2{X: u, Y: v}
			g.Local[idx] = Vec3{X: u - 0.5, Y: 0.5 - v}
		}
	}

	ii := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			g.Indices[ii+0] = tl
			g.Indices[ii+1] = bl
			g.Indices[ii+2] = tr
			g.Indices[ii+3] = tr
			g.Indices[ii+4] = bl
			g.Indices[ii+5] = br
			ii += 6
		}
	}
	return g
}

// Plane shadows one page image. The registry owns it; hover state lives
// here rather than on any graphics object.
type Plane struct {
	Element   Element
	Geometry  *Geometry
	Uniforms  *Uniforms
	Hovered   bool
	Transform Transform

	hoverSub CallbackHandle
	verts    []ebiten.Vertex // preallocated projection buffer
}
