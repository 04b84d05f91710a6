package ripple

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	// wheelPixelsPerNotch converts one wheel notch into content pixels.
	wheelPixelsPerNotch = 100.0
	// pageScrollFraction is how much of the viewport a page key scrolls.
	pageScrollFraction = 0.9
	// keyScrollDuration is the tween length of keyboard scrolling, in seconds.
	keyScrollDuration = 0.8
)

// inputState is the last known pointer position in viewport pixels.
type inputState struct {
	x, y   float64
	inside bool
}

// processInput applies viewport changes, then one injected event if any is
// queued, else the host's wheel, keyboard and cursor state.
func (e *Effect) processInput() {
	vp := e.ctx.Camera.Viewport
	if e.layoutW > 0 && e.layoutH > 0 &&
		(float64(e.layoutW) != vp.Width || float64(e.layoutH) != vp.Height) {
		e.resize(e.layoutW, e.layoutH)
	}

	if e.processInjectedInput() {
		return
	}
	if !e.pollHost {
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		// Positive wheel y scrolls up, i.e. towards smaller offsets.
		e.scroller.Wheel(-wy * wheelPixelsPerNotch)
	}
	e.processKeys()

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	inside := cx >= 0 && cy >= 0 && cx < e.layoutW && cy < e.layoutH
	switch {
	case !inside && e.input.inside:
		e.pointerLeave()
	case inside && (!e.input.inside || x != e.input.x || y != e.input.y):
		e.pointerMove(x, y)
	}
}

func (e *Effect) processKeys() {
	page := float64(e.layoutH) * pageScrollFraction
	target := e.scroller.Target()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown),
		inpututil.IsKeyJustPressed(ebiten.KeySpace) && !ebiten.IsKeyPressed(ebiten.KeyShift):
		e.scroller.ScrollTo(target+page, keyScrollDuration, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp),
		inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.scroller.ScrollTo(target-page, keyScrollDuration, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		e.scroller.ScrollTo(0, keyScrollDuration, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		e.scroller.ScrollTo(e.scroller.Limit(), keyScrollDuration, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		e.Screenshot("key")
	}
}

// pointerMove updates hover state on the page, then forwards the position to
// the hovered planes.
func (e *Effect) pointerMove(x, y float64) {
	e.input = inputState{x: x, y: y, inside: true}
	e.page.PointerAt(x, y, e.offset())
	if e.router != nil {
		e.router.PointerMove(x, y)
	}
}

func (e *Effect) pointerLeave() {
	e.input.inside = false
	e.page.PointerLeave()
}

// refreshHover re-tests the resting pointer after the content moved under
// it.
func (e *Effect) refreshHover() {
	if e.input.inside {
		e.page.PointerAt(e.input.x, e.input.y, e.offset())
	}
}
