package ripple

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader source ---
// imageSrc0 is the plane's image, imageSrc1 the displacement map. Uniform
// names match the Uniform* constants.

const distortionShaderSrc = `//kage:unit pixels

package main

var Mouse vec2
var Time float
var Intensity float
var ScrollSpeed float
var ScrollDirection float

func sampleImage(uv vec2) vec4 {
	uv = clamp(uv, vec2(0), vec2(1))
	return imageSrc0At(imageSrc0Origin() + uv*imageSrc0Size())
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (srcPos - imageSrc0Origin()) / imageSrc0Size()
	disp := imageSrc1At(imageSrc1Origin() + uv*imageSrc1Size())

	// Mouse is bottom-up, texture space is top-down.
	pointer := vec2(Mouse.x, 1-Mouse.y)
	falloff := 1 - smoothstep(0, 0.45, distance(uv, pointer))
	push := (disp.rg - 0.5) * 0.12 * falloff * Intensity

	speed := min(ScrollSpeed, 2.0)
	wave := sin(uv.x*9.0+Time*3.0) * 0.012 * speed
	uv += push + vec2(0, wave*ScrollDirection)

	shift := 0.006 * speed * ScrollDirection
	r := sampleImage(uv + vec2(0, shift)).r
	g := sampleImage(uv).g
	b := sampleImage(uv - vec2(0, shift)).b
	a := sampleImage(uv).a
	return vec4(r, g, b, a) * color.a
}
`

// --- Lazy shader compilation (no sync.Once: ripple is single-threaded) ---

var distortionShader *ebiten.Shader

func ensureDistortionShader() *ebiten.Shader {
	if distortionShader == nil {
		s, err := ebiten.NewShader([]byte(distortionShaderSrc))
		if err != nil {
			panic("ripple: failed to compile distortion shader: " + err.Error())
		}
		distortionShader = s
	}
	return distortionShader
}

// LoadShader reads and compiles a Kage program from path.
func LoadShader(path string) (*ebiten.Shader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", path, err)
	}
	return compileShader(path, src)
}

func compileShader(name string, src []byte) (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %s: %w", name, err)
	}
	return s, nil
}

// ShaderWatcher reports new contents of a shader file. Events arrive on a
// background goroutine; the game loop collects them with Poll so that
// compilation stays on the update goroutine.
type ShaderWatcher struct {
	path    string
	w       *fsnotify.Watcher
	pending chan []byte
	errs    chan error
}

// WatchShader watches path for writes. The parent directory is watched so
// that editors replacing the file by rename are picked up too.
func WatchShader(path string) (*ShaderWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch shader %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch shader %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch shader %s: %w", path, err)
	}
	sw := &ShaderWatcher{
		path:    abs,
		w:       w,
		pending: make(chan []byte, 1),
		errs:    make(chan error, 1),
	}
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			src, err := os.ReadFile(sw.path)
			if err != nil {
				sw.report(err)
				continue
			}
			// Keep only the newest contents.
			select {
			case <-sw.pending:
			default:
			}
			sw.pending <- src
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			sw.report(err)
		}
	}
}

func (sw *ShaderWatcher) report(err error) {
	select {
	case sw.errs <- err:
	default:
	}
}

// Path returns the absolute path being watched.
func (sw *ShaderWatcher) Path() string { return sw.path }

// Poll returns the newest file contents since the last call, if any.
func (sw *ShaderWatcher) Poll() ([]byte, bool) {
	select {
	case src := <-sw.pending:
		return src, true
	default:
		return nil, false
	}
}

// Err returns a pending watch error, if any.
func (sw *ShaderWatcher) Err() error {
	select {
	case err := <-sw.errs:
		return err
	default:
		return nil
	}
}

// Close stops watching.
func (sw *ShaderWatcher) Close() error {
	return sw.w.Close()
}
