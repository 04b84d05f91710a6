package ripple

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool
	// Resizable lets the user resize the window; the planes follow.
	Resizable bool
}

// Run opens a window, starts loading and runs the effect until the window is
// closed, Stop is called or loading fails. Host input (wheel, keyboard and
// cursor) is polled each frame.
func Run(e *Effect, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "ripple"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		vp := e.page.Viewport()
		cfg.Width, cfg.Height = int(vp.X), int(vp.Y)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	e.pollHost = true
	e.ShowHUD = cfg.ShowHUD

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)
	return ebiten.RunGame(e)
}
