package ripple

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// testPage returns a 1000x800 page with one image per source and matching
// textures.
func testPage(srcs ...string) (*Page, map[string]*ebiten.Image) {
	page := NewPage(1000, 800)
	textures := make(map[string]*ebiten.Image, len(srcs))
	for _, src := range srcs {
		page.AddImage(src)
		textures[src] = ebiten.NewImage(64, 48)
	}
	return page, textures
}

func TestRegistryBuildOnePlanePerImage(t *testing.T) {
	page, textures := testPage("a.png", "b.png", "c.png")
	reg := NewRegistry(testContext(1000, 800), nil)

	planes, err := reg.Build(page.Elements(), textures, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(planes) != 3 || reg.Len() != 3 || !reg.Built() {
		t.Fatalf("planes = %d, Len = %d, Built = %v", len(planes), reg.Len(), reg.Built())
	}
	for i, el := range page.Images() {
		p, ok := reg.Lookup(el)
		if !ok || p != planes[i] {
			t.Errorf("Lookup(%s) = %v, %v", el.Source(), p, ok)
		}
		if p.Uniforms.Image != textures[el.Source()] {
			t.Errorf("plane %d bound to the wrong texture", i)
		}
	}
}

func TestRegistryUniformDefaults(t *testing.T) {
	page, textures := testPage("a.png")
	reg := NewRegistry(testContext(1000, 800), nil)
	planes, _ := reg.Build(page.Elements(), textures, -1)

	u := planes[0].Uniforms
	if u.Mouse != (Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("Mouse = %v, want (0.5, 0.5)", u.Mouse)
	}
	if u.Intensity != 0 || u.ScrollSpeed != 0 || u.Time != 0 {
		t.Errorf("Intensity, ScrollSpeed, Time = %v, %v, %v; want zeros", u.Intensity, u.ScrollSpeed, u.Time)
	}
	if u.ScrollDirection != -1 {
		t.Errorf("ScrollDirection = %v, want -1", u.ScrollDirection)
	}
	if u.Displacement == nil {
		t.Error("Displacement should fall back to a neutral map")
	}
}

func TestRegistrySharesGeometryAndDisplacement(t *testing.T) {
	page, textures := testPage("a.png", "b.png")
	reg := NewRegistry(testContext(1000, 800), nil)
	planes, _ := reg.Build(page.Elements(), textures, 1)

	if planes[0].Geometry != planes[1].Geometry {
		t.Error("planes should share one geometry")
	}
	if planes[0].Uniforms.Displacement != planes[1].Uniforms.Displacement {
		t.Error("equally sized textures should share one displacement map")
	}
	g := planes[0].Geometry
	if g.Cols != PlaneSegments || g.Rows != PlaneSegments {
		t.Errorf("geometry = %dx%d, want %dx%d", g.Cols, g.Rows, PlaneSegments, PlaneSegments)
	}
}

func TestRegistryDisplacementLoadedOncePerBuild(t *testing.T) {
	page, textures := testPage("a.png", "b.png", "c.png")
	textures["c.png"] = ebiten.NewImage(32, 32)

	calls := 0
	load := func() (image.Image, error) {
		calls++
		img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
		return img, nil
	}
	reg := NewRegistry(testContext(1000, 800), load)
	planes, err := reg.Build(page.Elements(), textures, 1)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
	if got := planes[2].Uniforms.Displacement.Bounds().Size(); got != (image.Point{X: 32, Y: 32}) {
		t.Errorf("displacement fitted to %v, want 32x32", got)
	}
	if got := planes[0].Uniforms.Displacement.Bounds().Size(); got != (image.Point{X: 64, Y: 48}) {
		t.Errorf("displacement fitted to %v, want 64x48", got)
	}
}

func TestRegistryDisplacementFailureIsNotFatal(t *testing.T) {
	page, textures := testPage("a.png")
	reg := NewRegistry(testContext(1000, 800), func() (image.Image, error) {
		return nil, errors.New("404")
	})
	planes, err := reg.Build(page.Elements(), textures, 1)
	if err != nil {
		t.Fatalf("Build = %v, want success with a neutral map", err)
	}
	if planes[0].Uniforms.Displacement == nil {
		t.Error("Displacement is nil")
	}
}

func TestRegistryMissingTextureIsFatal(t *testing.T) {
	page, textures := testPage("a.png", "b.png")
	delete(textures, "b.png")
	reg := NewRegistry(testContext(1000, 800), nil)

	planes, err := reg.Build(page.Elements(), textures, 1)
	if !errors.Is(err, ErrMissingTexture) {
		t.Fatalf("err = %v, want ErrMissingTexture", err)
	}
	var mte *MissingTextureError
	if !errors.As(err, &mte) || mte.Source != "b.png" {
		t.Errorf("err = %#v, want MissingTextureError for b.png", err)
	}
	if planes != nil || reg.Len() != 0 || reg.Built() {
		t.Error("a failed build must not leave planes behind")
	}
	for _, el := range page.Images() {
		if el.Hidden() {
			t.Errorf("%s hidden by a failed build", el.Source())
		}
	}
}

func TestRegistryBuildOnlyOnce(t *testing.T) {
	page, textures := testPage("a.png")
	reg := NewRegistry(testContext(1000, 800), nil)
	if _, err := reg.Build(page.Elements(), textures, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Build(page.Elements(), textures, 1); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("second Build = %v, want ErrAlreadyBuilt", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d after second Build, want 1", reg.Len())
	}
}

func TestRegistryHidesElementsKeepingLayout(t *testing.T) {
	page, textures := testPage("a.png", "b.png")
	before := page.Images()[1].Rect()

	reg := NewRegistry(testContext(1000, 800), nil)
	if _, err := reg.Build(page.Elements(), textures, 1); err != nil {
		t.Fatal(err)
	}
	for _, el := range page.Images() {
		if !el.Hidden() {
			t.Errorf("%s not hidden", el.Source())
		}
	}
	if page.Images()[1].Rect() != before {
		t.Errorf("hiding moved the layout: %v -> %v", before, page.Images()[1].Rect())
	}
}

func TestRegistryHoverTogglesFlagOnly(t *testing.T) {
	page, textures := testPage("a.png", "b.png")
	reg := NewRegistry(testContext(1000, 800), nil)
	planes, _ := reg.Build(page.Elements(), textures, 1)

	r := page.Images()[0].Rect()
	page.PointerAt(r.X+1, r.Y+1, 0)
	if !planes[0].Hovered || planes[1].Hovered {
		t.Fatalf("Hovered = %v, %v; want true, false", planes[0].Hovered, planes[1].Hovered)
	}
	if planes[0].Uniforms.Intensity != 0 || planes[0].Uniforms.Mouse != (Vec2{X: 0.5, Y: 0.5}) {
		t.Error("hover alone must not touch uniforms")
	}
	if reg.Hovered() != 1 {
		t.Errorf("Hovered() = %d, want 1", reg.Hovered())
	}

	page.PointerLeave()
	if planes[0].Hovered {
		t.Error("plane still hovered after leave")
	}
}

func TestRegistryDispose(t *testing.T) {
	page, textures := testPage("a.png")
	reg := NewRegistry(testContext(1000, 800), nil)
	planes, _ := reg.Build(page.Elements(), textures, 1)

	reg.Dispose()
	if reg.Len() != 0 {
		t.Errorf("Len after Dispose = %d", reg.Len())
	}
	r := page.Images()[0].Rect()
	page.PointerAt(r.X+1, r.Y+1, 0)
	if planes[0].Hovered {
		t.Error("disposed plane still receives hover")
	}
}

func TestPlaneGeometry(t *testing.T) {
	g := newPlaneGeometry(2, 3)
	if len(g.Local) != 12 || len(g.UV) != 12 || len(g.Indices) != 36 {
		t.Fatalf("sizes = %d, %d, %d; want 12, 12, 36", len(g.Local), len(g.UV), len(g.Indices))
	}
	if g.Local[0] != (Vec3{X: -0.5, Y: 0.5}) || g.UV[0] != (Vec2{}) {
		t.Errorf("first vertex = %v uv %v, want top-left", g.Local[0], g.UV[0])
	}
	last := len(g.Local) - 1
	if g.Local[last] != (Vec3{X: 0.5, Y: -0.5}) || g.UV[last] != (Vec2{X: 1, Y: 1}) {
		t.Errorf("last vertex = %v uv %v, want bottom-right", g.Local[last], g.UV[last])
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Local) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	// 50x50 must still fit uint16 indices.
	big := newPlaneGeometry(PlaneSegments, PlaneSegments)
	if len(big.Local) > 1<<16 {
		t.Errorf("%d vertices overflow uint16 indices", len(big.Local))
	}
}
