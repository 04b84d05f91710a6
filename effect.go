package ripple

import (
	"context"
	"image"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Context carries the state shared by every component. It is created once
// per Effect and handed to each constructor.
type Context struct {
	Config  Config
	Camera  *Camera
	Surface *Surface

	log *logger
	now func() time.Time
}

// NewContext creates a context for a viewport of w x h pixels. Zero config
// fields take their defaults.
func NewContext(cfg Config, w, h int) *Context {
	cfg = cfg.withDefaults()
	return &Context{
		Config:  cfg,
		Camera:  newCamera(cfg, float64(w), float64(h)),
		Surface: NewSurface(w, h),
		log:     newLogger(cfg.LogOutput, cfg.Debug),
		now:     time.Now,
	}
}

type loadResult struct {
	images map[string]image.Image
	err    error
}

// Effect is the distortion overlay for one page. It implements ebiten.Game.
//
// Lifecycle: NewEffect, then Start (or Load), then Update/Draw every frame
// until Stop. Planes and event routing only exist once loading finished;
// before that scroll, pointer and resize input leaves the planes alone.
type Effect struct {
	// ShowHUD draws the debug overlay in the top-left corner.
	ShowHUD bool

	ctx       *Context
	page      *Page
	scroller  *Scroller
	mapper    *Mapper
	registry  *Registry
	preloader Preloader

	// Set once loading finished.
	tracker  *ScrollTracker
	animator *Animator
	router   *Router
	textures map[string]*ebiten.Image

	render  renderer
	watcher *ShaderWatcher

	loadCh  chan loadResult
	loading bool
	loaded  bool
	stopped bool

	pollHost    bool
	input       inputState
	injectQueue []syntheticEvent
	layoutW     int
	layoutH     int

	hud             *hud
	screenshotQueue []string
	testRunner      *TestRunner
	stats           frameStats
}

// NewEffect creates the overlay for page. Image sources and the displacement
// map are read from assets.
func NewEffect(page *Page, assets fs.FS, cfg Config) (*Effect, error) {
	vp := page.Viewport()
	ctx := NewContext(cfg, int(vp.X), int(vp.Y))
	cfg = ctx.Config

	e := &Effect{
		ctx:       ctx,
		page:      page,
		scroller:  NewScroller(cfg.ScrollLerp, cfg.WheelSpeed),
		mapper:    NewMapper(ctx),
		preloader: Preloader{FS: assets, Limit: cfg.LoadConcurrency},
		loadCh:    make(chan loadResult, 1),
		layoutW:   int(vp.X),
		layoutH:   int(vp.Y),
		hud:       newHUD(),
	}
	e.render.vertexFunc = cfg.VertexFunc

	var load DisplacementLoader
	if cfg.Displacement != "" {
		load = func() (image.Image, error) {
			return decodeAsset(assets, cfg.Displacement)
		}
	}
	e.registry = NewRegistry(ctx, load)

	e.scroller.SetLimit(page.ScrollLimit())
	page.OnLayout(func(p *Page) {
		e.scroller.SetLimit(p.ScrollLimit())
	})

	if cfg.ShaderFile == "" {
		// The built-in shader is compiled on first draw.
		return e, nil
	}
	s, err := LoadShader(cfg.ShaderFile)
	if err != nil {
		return nil, err
	}
	e.render.shader = s
	if cfg.WatchShader {
		w, err := WatchShader(cfg.ShaderFile)
		if err != nil {
			return nil, err
		}
		e.watcher = w
	}
	return e, nil
}

// Start preloads every page image on a background goroutine. The result is
// picked up by Update; a failure is returned from Update and ends the game.
func (e *Effect) Start(ctx context.Context) {
	if e.loading || e.loaded {
		return
	}
	e.loading = true
	urls := e.page.Sources()
	go func() {
		images, err := e.preloader.Load(ctx, urls)
		e.loadCh <- loadResult{images: images, err: err}
	}()
}

// Load preloads every page image and builds the planes before returning.
func (e *Effect) Load(ctx context.Context) error {
	images, err := e.preloader.Load(ctx, e.page.Sources())
	if err != nil {
		return err
	}
	return e.finishLoad(images)
}

// finishLoad uploads textures, builds the planes and attaches the event
// routing. Runs on the game goroutine.
func (e *Effect) finishLoad(images map[string]image.Image) error {
	e.textures = newTextures(images)
	for url, tex := range e.textures {
		e.page.SetImage(url, tex)
	}

	tracker := NewScrollTracker(e.ctx, e.scroller)
	tracker.lastOffset = e.scroller.Scroll()
	if _, err := e.registry.Build(e.page.Elements(), e.textures, tracker.Direction()); err != nil {
		tracker.Close()
		return err
	}

	e.tracker = tracker
	e.animator = NewAnimator(e.ctx, e.registry, tracker, e.mapper)
	e.router = NewRouter(e.ctx, e.registry, tracker, e.mapper, e.page)
	tracker.OnChange(func(t *ScrollTracker) {
		e.mapper.place(e.registry.Planes(), t.CurrentOffset())
	})
	e.mapper.place(e.registry.Planes(), tracker.CurrentOffset())

	e.loaded = true
	e.hud.show()
	e.ctx.log.debugf("loaded %d textures for %d images", len(e.textures), e.registry.Len())
	return nil
}

// Stop ends the frame loop: the next Update tears the effect down and
// returns ebiten.Termination.
func (e *Effect) Stop() {
	e.stopped = true
}

func (e *Effect) teardown() {
	e.registry.Dispose()
	if e.tracker != nil {
		e.tracker.Close()
	}
	if e.watcher != nil {
		_ = e.watcher.Close()
		e.watcher = nil
	}
}

// dt is the duration of one tick in seconds.
func (e *Effect) dt() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		// SyncWithFPS
		return 1.0 / max(ebiten.ActualTPS(), 1)
	}
	return 1.0 / float64(tps)
}

// offset is the content translation applied by the scroller, 0 before it
// started.
func (e *Effect) offset() float64 {
	if e.tracker != nil {
		return e.tracker.CurrentOffset()
	}
	off, ok := e.scroller.AppliedOffset()
	if !ok {
		return 0
	}
	return off
}

// Update advances one frame: pending load results, input, the virtual
// scroller, then plane placement and uniform decay.
func (e *Effect) Update() error {
	if e.stopped {
		e.teardown()
		return ebiten.Termination
	}

	if e.loading {
		select {
		case res := <-e.loadCh:
			e.loading = false
			if res.err != nil {
				return res.err
			}
			if err := e.finishLoad(res.images); err != nil {
				return err
			}
		default:
		}
	}

	e.pollShader()

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInput()
	e.scroller.Advance(e.dt())
	e.refreshHover()

	if e.loaded {
		var t0 time.Time
		if e.ctx.log.debug {
			t0 = time.Now()
		}
		e.animator.Step()
		if e.ctx.log.debug {
			e.stats.animateTime = time.Since(t0)
		}
	}

	e.hud.update(e.dt(), e)
	return nil
}

// pollShader swaps in a reloaded shader after it compiled successfully.
func (e *Effect) pollShader() {
	if e.watcher == nil {
		return
	}
	if err := e.watcher.Err(); err != nil {
		e.ctx.log.warnf("shader watch: %v", err)
	}
	src, ok := e.watcher.Poll()
	if !ok {
		return
	}
	s, err := compileShader(e.watcher.Path(), src)
	if err != nil {
		e.ctx.log.warnf("%v (keeping previous shader)", err)
		return
	}
	e.render.shader = s
	e.ctx.log.debugf("reloaded shader %s", e.watcher.Path())
}

// Draw paints the page, then the overlay with every plane, then the HUD.
func (e *Effect) Draw(screen *ebiten.Image) {
	e.page.Draw(screen, e.offset())

	if e.loaded {
		var t0 time.Time
		if e.ctx.log.debug {
			t0 = time.Now()
		}
		surface := e.ctx.Surface
		surface.Clear()
		drawn := e.render.draw(surface.Image(), e.registry.Planes(), e.ctx.Camera)
		surface.DrawTo(screen)

		if e.ctx.log.debug {
			e.stats.frame++
			e.stats.renderTime = time.Since(t0)
			e.stats.planeCount = e.registry.Len()
			e.stats.drawnCount = drawn
			e.ctx.log.logStats(e.stats)
		}
	} else {
		ebitenutil.DebugPrintAt(screen, "loading...", 16, e.layoutH-32)
	}

	if e.ShowHUD {
		e.hud.draw(screen)
	}
	e.flushScreenshots(screen)
}

// Layout reports the screen size. Size changes are applied in the next
// Update.
func (e *Effect) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.layoutW, e.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// resize applies a viewport change. Before loading there are no planes to
// move, so only the camera, surface and page are updated.
func (e *Effect) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	e.layoutW, e.layoutH = w, h
	if e.router != nil {
		e.router.Resize(w, h)
		return
	}
	e.ctx.Camera.SetViewport(float64(w), float64(h))
	e.ctx.Surface.Resize(w, h)
	e.page.SetViewport(float64(w), float64(h))
}

// SetDebugMode enables or disables debug logging and per-frame stats.
func (e *Effect) SetDebugMode(enabled bool) {
	e.ctx.log.debug = enabled
}

// Context returns the effect's shared context.
func (e *Effect) Context() *Context { return e.ctx }

// Page returns the host page.
func (e *Effect) Page() *Page { return e.page }

// Scroller returns the virtual scroller.
func (e *Effect) Scroller() *Scroller { return e.scroller }

// Registry returns the plane registry.
func (e *Effect) Registry() *Registry { return e.registry }

// Tracker returns the scroll tracker, or nil before loading finished.
func (e *Effect) Tracker() *ScrollTracker { return e.tracker }

// Loaded reports whether the planes have been built.
func (e *Effect) Loaded() bool { return e.loaded }
