package ripple

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollSnapThreshold is the distance in pixels below which the damped
// approach snaps onto its target.
const scrollSnapThreshold = 0.5

// Scroller is a virtual scroller: native scroll input only moves a target,
// and the content translation approaches it smoothly once per frame.
// Advance must be called every frame or the position freezes.
type Scroller struct {
	// Lerp is the fraction of the remaining distance covered per 60 Hz frame.
	Lerp float64
	// WheelSpeed multiplies wheel deltas.
	WheelSpeed float64

	limit    float64
	target   float64
	animated float64
	started  bool
	jump     bool

	tween *gween.Tween

	scroll handlerList[func(float64)]
}

// NewScroller creates a scroller with the given smoothing and wheel speed.
func NewScroller(lerp, wheelSpeed float64) *Scroller {
	if lerp <= 0 || lerp > 1 {
		lerp = DefaultScrollLerp
	}
	if wheelSpeed == 0 {
		wheelSpeed = DefaultWheelSpeed
	}
	return &Scroller{Lerp: lerp, WheelSpeed: wheelSpeed}
}

// OnScroll registers fn to receive the absolute scroll position each time
// Advance applies a new one.
func (s *Scroller) OnScroll(fn func(offset float64)) CallbackHandle {
	return s.scroll.add(fn)
}

// AppliedOffset returns the vertical translation applied to the content
// (the negated scroll position). ok is false until the first Advance.
func (s *Scroller) AppliedOffset() (float64, bool) {
	if !s.started {
		return 0, false
	}
	return -s.animated, true
}

// SetLimit sets the maximum scroll position (content height minus viewport
// height) and clamps the current target and position into range.
func (s *Scroller) SetLimit(limit float64) {
	s.limit = math.Max(limit, 0)
	s.target = s.clamp(s.target)
	if s.animated > s.limit {
		s.animated = s.limit
	}
}

// Limit returns the maximum scroll position.
func (s *Scroller) Limit() float64 { return s.limit }

// Scroll returns the current, smoothed scroll position.
func (s *Scroller) Scroll() float64 { return s.animated }

// Target returns the position the scroller is approaching.
func (s *Scroller) Target() float64 { return s.target }

// IsScrolling reports whether the position has not yet reached the target.
func (s *Scroller) IsScrolling() bool {
	return s.tween != nil || s.jump || s.animated != s.target
}

// Wheel moves the target by dy pixels (positive scrolls down). It cancels a
// running ScrollTo.
func (s *Scroller) Wheel(dy float64) {
	s.tween = nil
	s.jump = false
	s.target = s.clamp(s.target + dy*s.WheelSpeed)
}

// ScrollTo animates to y over duration seconds with the given easing. A nil
// easing uses ease.OutExpo; a non-positive duration jumps on the next Advance.
func (s *Scroller) ScrollTo(y float64, duration float32, fn ease.TweenFunc) {
	y = s.clamp(y)
	s.target = y
	if duration <= 0 {
		s.tween = nil
		s.jump = true
		return
	}
	if fn == nil {
		fn = ease.OutExpo
	}
	s.tween = gween.New(float32(s.animated), float32(y), duration, fn)
}

// Advance moves the position toward the target by dt seconds and notifies
// the scroll listeners when it changed.
func (s *Scroller) Advance(dt float64) {
	first := !s.started
	s.started = true
	prev := s.animated

	switch {
	case s.jump:
		s.animated = s.target
		s.jump = false
	case s.tween != nil:
		v, done := s.tween.Update(float32(dt))
		s.animated = float64(v)
		if done {
			s.animated = s.target
			s.tween = nil
		}
	case s.animated != s.target:
		s.animated = damp(s.animated, s.target, s.Lerp*60, dt)
		if math.Abs(s.target-s.animated) < scrollSnapThreshold {
			s.animated = s.target
		}
	}

	if s.animated != prev || (first && s.animated != 0) {
		for _, h := range s.scroll.items {
			h.fn(s.animated)
		}
	}
}

func (s *Scroller) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.limit))
}

// damp is a frame-rate independent lerp from x toward y.
func damp(x, y, lambda, dt float64) float64 {
	return x + (y-x)*(1-math.Exp(-lambda*dt))
}
