package ripple

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// hudRefresh is how often the HUD text is redrawn, in seconds.
const hudRefresh = 0.25

// hud is a small debug panel: FPS, scroll state and plane counts. It fades
// in once loading finished.
type hud struct {
	img   *ebiten.Image
	alpha float32
	fade  *gween.Tween
	since float64
	op    ebiten.DrawImageOptions
}

func newHUD() *hud {
	return &hud{since: hudRefresh}
}

// show starts the fade-in.
func (h *hud) show() {
	h.fade = gween.New(0, 1, 0.4, ease.OutQuad)
}

func (h *hud) update(dt float64, e *Effect) {
	if h.fade != nil {
		v, done := h.fade.Update(float32(dt))
		h.alpha = v
		if done {
			h.fade = nil
		}
	}

	h.since += dt
	if h.since < hudRefresh || !e.ShowHUD {
		return
	}
	h.since = 0

	if h.img == nil {
		// Six lines of debug font.
		h.img = ebiten.NewImage(180, 96)
	}
	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text(e))
}

func (h *hud) text(e *Effect) string {
	s := e.scroller
	txt := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscroll: %.0f / %.0f\n",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.Scroll(), s.Limit())
	if !e.loaded {
		return txt + "loading"
	}
	return txt + fmt.Sprintf("dir: %+.0f speed: %.3f\nplanes: %d hovered: %d",
		e.tracker.Direction(), e.tracker.Speed(), e.registry.Len(), e.registry.Hovered())
}

func (h *hud) draw(screen *ebiten.Image) {
	if h.img == nil {
		return
	}
	h.op.GeoM.Reset()
	h.op.GeoM.Translate(8, 8)
	h.op.ColorScale.Reset()
	if h.alpha < 1 {
		h.op.ColorScale.ScaleAlpha(max(h.alpha, 0.35))
	}
	screen.DrawImage(h.img, &h.op)
}
