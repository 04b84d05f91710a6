package ripple

import (
	"io"
	"os"
)

// Default tuning values. The decay constants differ on purpose: hover
// intensity lingers, scroll speed settles within a few frames.
const (
	DefaultFOV            = 75.0
	DefaultNear           = 0.1
	DefaultFar            = 1000.0
	DefaultDepth          = 2.0
	DefaultScrollScale    = 0.01
	DefaultIntensityDecay = 0.95
	DefaultSpeedDecay     = 0.56
	DefaultScrollLerp     = 0.1
	DefaultWheelSpeed     = 1.0
)

// ScreenshotFormat selects the encoder used by Effect.Screenshot.
type ScreenshotFormat uint8

const (
	ScreenshotPNG  ScreenshotFormat = iota // image/png
	ScreenshotWebP                         // lossless WebP via nativewebp
)

// Config holds the tunables of an Effect. Zero fields are replaced with the
// package defaults by NewEffect.
type Config struct {
	// Camera
	FOV   float64 // vertical field of view in degrees
	Near  float64
	Far   float64
	Depth float64 // camera distance from the plane layer (z = 0)

	// Scroll
	ScrollScale float64 // pixels per event -> speed uniform
	ScrollLerp  float64 // virtual scroller smoothing per 60 Hz frame
	WheelSpeed  float64 // wheel delta multiplier

	// Decay
	IntensityDecay float64
	SpeedDecay     float64

	// Shader. When ShaderFile is empty the built-in program is used.
	ShaderFile  string
	WatchShader bool

	// VertexFunc optionally displaces plane vertices on the CPU before
	// projection. Kage has no vertex stage.
	VertexFunc VertexFunc

	// Assets
	Displacement    string // displacement map path inside the asset FS
	LoadConcurrency int

	// Diagnostics
	Debug            bool
	LogOutput        io.Writer
	ScreenshotDir    string
	ScreenshotFormat ScreenshotFormat
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	var c Config
	return c.withDefaults()
}

// withDefaults returns a copy of c with every zero field set to its default.
func (c Config) withDefaults() Config {
	if c.FOV <= 0 {
		c.FOV = DefaultFOV
	}
	if c.Near <= 0 {
		c.Near = DefaultNear
	}
	if c.Far <= 0 {
		c.Far = DefaultFar
	}
	if c.Depth <= 0 {
		c.Depth = DefaultDepth
	}
	if c.ScrollScale <= 0 {
		c.ScrollScale = DefaultScrollScale
	}
	if c.ScrollLerp <= 0 || c.ScrollLerp > 1 {
		c.ScrollLerp = DefaultScrollLerp
	}
	if c.WheelSpeed == 0 {
		c.WheelSpeed = DefaultWheelSpeed
	}
	if c.IntensityDecay <= 0 || c.IntensityDecay >= 1 {
		c.IntensityDecay = DefaultIntensityDecay
	}
	if c.SpeedDecay <= 0 || c.SpeedDecay >= 1 {
		c.SpeedDecay = DefaultSpeedDecay
	}
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	return c
}
