package ripple

import "github.com/hajimehoshi/ebiten/v2"

// renderer draws planes into the overlay surface.
type renderer struct {
	shader     *ebiten.Shader
	vertexFunc VertexFunc
	shaderOp   ebiten.DrawTrianglesShaderOptions
}

// projectPlane fills the plane's vertex buffer with its grid projected into
// viewport pixels. It returns false when any vertex falls outside the clip
// range, in which case the plane is not drawn this frame.
func projectPlane(p *Plane, cam *Camera, vf VertexFunc) bool {
	g := p.Geometry
	if cap(p.verts) < len(g.Local) {
		p.verts = make([]ebiten.Vertex, len(g.Local))
	}
	p.verts = p.verts[:len(g.Local)]

	b := p.Uniforms.Image.Bounds()
	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	tw, th := float64(b.Dx()), float64(b.Dy())

	for i, local := range g.Local {
		uv := g.UV[i]
		if vf != nil {
			local = vf(local, uv, p.Uniforms)
		}
		sx, sy, ok := cam.WorldToScreen(p.Transform.Apply(local))
		if !ok {
			return false
		}
		p.verts[i] = ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   float32(ox + uv.X*tw),
			SrcY:   float32(oy + uv.Y*th),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return true
}

// draw renders every plane into dst in one pass and returns the number of
// planes drawn.
func (r *renderer) draw(dst *ebiten.Image, planes []*Plane, cam *Camera) int {
	if r.shader == nil {
		r.shader = ensureDistortionShader()
	}
	drawn := 0
	for _, p := range planes {
		if !projectPlane(p, cam, r.vertexFunc) {
			continue
		}
		r.shaderOp.Images[0] = p.Uniforms.Image
		r.shaderOp.Images[1] = p.Uniforms.Displacement
		r.shaderOp.Uniforms = p.Uniforms.shaderValues()
		dst.DrawTrianglesShader(p.verts, p.Geometry.Indices, r.shader, &r.shaderOp)
		drawn++
	}
	return drawn
}
