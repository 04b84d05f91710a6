package ripple

import (
	"math"
	"testing"
)

func TestVisibleExtentRatioEqualsAspect(t *testing.T) {
	ctx := testContext(1000, 800)
	m := NewMapper(ctx)
	for _, d := range []float64{0.01, 0.5, 1, 2, 7.25, 100} {
		e := m.VisibleExtent(d)
		if !approxEqual(e.Width/e.Height, ctx.Camera.Aspect, epsilon) {
			t.Errorf("depth %v: width/height = %v, want %v", d, e.Width/e.Height, ctx.Camera.Aspect)
		}
	}
}

func TestVisibleExtentDefaultsToCameraDepth(t *testing.T) {
	ctx := testContext(1000, 800)
	m := NewMapper(ctx)
	got := m.VisibleExtent(0)
	want := m.VisibleExtent(ctx.Camera.Z)
	if got != want {
		t.Errorf("VisibleExtent(0) = %v, want %v", got, want)
	}
}

func TestVisibleExtentScenario(t *testing.T) {
	m := NewMapper(testContext(1000, 800))
	e := m.VisibleExtent(2)
	wantH := 2 * math.Tan(37.5*math.Pi/180) * 2
	if !approxEqual(e.Height, wantH, epsilon) || !approxEqual(e.Height, 3.07, 0.01) {
		t.Errorf("Height = %v, want %v (~3.07)", e.Height, wantH)
	}
	if !approxEqual(e.Width, wantH*1.25, epsilon) || !approxEqual(e.Width, 3.84, 0.01) {
		t.Errorf("Width = %v, want %v (~3.84)", e.Width, wantH*1.25)
	}
}

func TestProjectFullViewportRoundTrip(t *testing.T) {
	for _, vp := range [][2]int{{1000, 800}, {640, 480}, {390, 844}} {
		ctx := testContext(vp[0], vp[1])
		m := NewMapper(ctx)
		ext := m.VisibleExtent(0)
		rect := Rect{Width: float64(vp[0]), Height: float64(vp[1])}
		tr := m.Project(rect, 0, ext)

		if !approxEqual(tr.Scale.X, ext.Width, epsilon) || !approxEqual(tr.Scale.Y, ext.Height, epsilon) || tr.Scale.Z != 1 {
			t.Errorf("%v: Scale = %v, want (%v, %v, 1)", vp, tr.Scale, ext.Width, ext.Height)
		}
		if !approxEqual(tr.Position.X, 0, epsilon) || !approxEqual(tr.Position.Y, 0, epsilon) || tr.Position.Z != 0 {
			t.Errorf("%v: Position = %v, want origin", vp, tr.Position)
		}
	}
}

func TestProjectQuadrant(t *testing.T) {
	m := NewMapper(testContext(1000, 800))
	ext := m.VisibleExtent(0)
	// Top-left quarter of the viewport.
	tr := m.Project(Rect{Width: 500, Height: 400}, 0, ext)
	if !approxEqual(tr.Scale.X, ext.Width/2, epsilon) || !approxEqual(tr.Scale.Y, ext.Height/2, epsilon) {
		t.Errorf("Scale = %v, want half extent", tr.Scale)
	}
	if !approxEqual(tr.Position.X, -ext.Width/4, epsilon) || !approxEqual(tr.Position.Y, ext.Height/4, epsilon) {
		t.Errorf("Position = %v, want (%v, %v)", tr.Position, -ext.Width/4, ext.Height/4)
	}
}

func TestProjectScrollOffsetMovesVertically(t *testing.T) {
	m := NewMapper(testContext(1000, 800))
	ext := m.VisibleExtent(0)
	rect := Rect{X: 100, Y: 300, Width: 200, Height: 100}

	base := m.Project(rect, 0, ext)
	moved := m.Project(rect, -200, ext)

	if moved.Scale != base.Scale || moved.Position.X != base.Position.X {
		t.Errorf("offset changed scale or x: %v vs %v", moved, base)
	}
	// 200 px up is a quarter of the 800 px viewport: ext.Height/4 in world units.
	if !approxEqual(moved.Position.Y-base.Position.Y, ext.Height/4, epsilon) {
		t.Errorf("dy = %v, want %v", moved.Position.Y-base.Position.Y, ext.Height/4)
	}
	// Equivalent to the rectangle itself sitting 200 px higher.
	same := m.Project(rect.Translate(0, -200), 0, ext)
	if !approxEqual(same.Position.Y, moved.Position.Y, epsilon) {
		t.Errorf("offset -200 = %v, translated rect = %v", moved.Position.Y, same.Position.Y)
	}
}

func TestProjectCoversRectOnScreen(t *testing.T) {
	ctx := testContext(1000, 800)
	m := NewMapper(ctx)
	rect := Rect{X: 120, Y: 90, Width: 360, Height: 240}
	tr := m.Project(rect, 0, m.VisibleExtent(0))

	sx, sy, _ := ctx.Camera.WorldToScreen(tr.Apply(Vec3{X: -0.5, Y: 0.5}))
	if !approxEqual(sx, rect.X, 1e-6) || !approxEqual(sy, rect.Y, 1e-6) {
		t.Errorf("top-left = (%v,%v), want (%v,%v)", sx, sy, rect.X, rect.Y)
	}
	sx, sy, _ = ctx.Camera.WorldToScreen(tr.Apply(Vec3{X: 0.5, Y: -0.5}))
	if !approxEqual(sx, rect.X+rect.Width, 1e-6) || !approxEqual(sy, rect.Y+rect.Height, 1e-6) {
		t.Errorf("bottom-right = (%v,%v), want (%v,%v)", sx, sy, rect.X+rect.Width, rect.Y+rect.Height)
	}
}

func TestProjectZeroViewport(t *testing.T) {
	ctx := testContext(1000, 800)
	ctx.Camera.SetViewport(0, 0)
	m := NewMapper(ctx)
	tr := m.Project(Rect{Width: 10, Height: 10}, 0, Extent{Width: 1, Height: 1})
	if tr != (Transform{Scale: Vec3{Z: 1}}) {
		t.Errorf("Project on empty viewport = %v, want zero scale", tr)
	}
}

func TestProjectIsPureFunction(t *testing.T) {
	m := NewMapper(testContext(1000, 800))
	ext := m.VisibleExtent(0)
	rect := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	a := m.Project(rect, 55, ext)
	m.Project(Rect{X: 999, Y: 999, Width: 1, Height: 1}, -300, ext)
	b := m.Project(rect, 55, ext)
	if a != b {
		t.Errorf("same inputs gave %v then %v", a, b)
	}
}
