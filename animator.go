package ripple

import "time"

// Animator advances the time uniform and decays the transient uniforms once
// per frame.
type Animator struct {
	// IntensityDecay multiplies the hover intensity every frame.
	IntensityDecay float64
	// SpeedDecay multiplies the filtered scroll speed every frame before the
	// new sample is added.
	SpeedDecay float64

	registry *Registry
	tracker  *ScrollTracker
	mapper   *Mapper
	now      func() time.Time
	start    time.Time
}

// NewAnimator creates an animator whose clock starts now.
func NewAnimator(ctx *Context, registry *Registry, tracker *ScrollTracker, mapper *Mapper) *Animator {
	return &Animator{
		IntensityDecay: ctx.Config.IntensityDecay,
		SpeedDecay:     ctx.Config.SpeedDecay,
		registry:       registry,
		tracker:        tracker,
		mapper:         mapper,
		now:            ctx.now,
		start:          ctx.now(),
	}
}

// Elapsed returns the time since the animator was created.
func (a *Animator) Elapsed() time.Duration {
	return a.now().Sub(a.start)
}

// Step repositions every plane from the current layout and scroll offset,
// then updates every plane's uniforms. Off-screen planes are not skipped.
func (a *Animator) Step() {
	planes := a.registry.Planes()
	a.mapper.place(planes, a.tracker.CurrentOffset())
	a.decay(planes, a.Elapsed().Seconds(), a.tracker.Sample(), a.tracker.Direction())
}

// decay applies one frame of uniform updates.
//
// ScrollSpeed is a leaky integrator: speed' = speed*SpeedDecay + sample, so a
// constant sample s settles at s / (1 - SpeedDecay).
func (a *Animator) decay(planes []*Plane, elapsed, sample, direction float64) {
	for _, p := range planes {
		u := p.Uniforms
		u.Time = elapsed
		u.Intensity *= a.IntensityDecay
		u.ScrollSpeed = u.ScrollSpeed*a.SpeedDecay + sample
		u.ScrollDirection = direction
	}
}
