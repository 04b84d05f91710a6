package ripple

import "math"

// ScrollSource is the virtual-scroll collaborator the tracker listens to.
type ScrollSource interface {
	// OnScroll registers fn to receive the absolute scroll offset every time
	// the collaborator applies a new position.
	OnScroll(fn func(offset float64)) CallbackHandle
	// AppliedOffset returns the vertical translation currently applied to the
	// content. ok is false while the collaborator has not applied anything.
	AppliedOffset() (offset float64, ok bool)
}

// ScrollTracker derives direction and speed from scroll notifications and
// exposes the collaborator's applied offset.
type ScrollTracker struct {
	// ScaleFactor converts a pixel delta per notification into the speed
	// uniform's range.
	ScaleFactor float64

	source     ScrollSource
	lastOffset float64
	direction  float64
	speed      float64
	fresh      bool

	changed handlerList[func(*ScrollTracker)]
	sub     CallbackHandle
}

// NewScrollTracker subscribes a tracker to source. Direction starts at +1
// (down).
func NewScrollTracker(ctx *Context, source ScrollSource) *ScrollTracker {
	t := &ScrollTracker{
		ScaleFactor: ctx.Config.ScrollScale,
		source:      source,
		direction:   1,
	}
	if source != nil {
		t.sub = source.OnScroll(t.Notify)
	}
	return t
}

// Notify applies one scroll notification carrying an absolute offset and runs
// the change listeners before returning. A zero delta keeps the previous
// direction.
func (t *ScrollTracker) Notify(offset float64) {
	delta := offset - t.lastOffset
	if delta > 0 {
		t.direction = 1
	} else if delta < 0 {
		t.direction = -1
	}
	t.speed = math.Abs(delta) * t.ScaleFactor
	t.fresh = true
	t.lastOffset = offset

	for _, h := range t.changed.items {
		h.fn(t)
	}
}

// OnChange registers fn to run synchronously after every notification.
func (t *ScrollTracker) OnChange(fn func(*ScrollTracker)) CallbackHandle {
	return t.changed.add(fn)
}

// CurrentOffset returns the translation the collaborator currently applies to
// the content, or 0 when it has not applied one yet.
func (t *ScrollTracker) CurrentOffset() float64 {
	if t.source == nil {
		return 0
	}
	off, ok := t.source.AppliedOffset()
	if !ok || math.IsNaN(off) || math.IsInf(off, 0) {
		return 0
	}
	return off
}

// Direction returns +1 for downward scrolling and -1 for upward scrolling.
func (t *ScrollTracker) Direction() float64 { return t.direction }

// Speed returns the speed computed from the most recent notification.
func (t *ScrollTracker) Speed() float64 { return t.speed }

// LastOffset returns the absolute offset of the most recent notification.
func (t *ScrollTracker) LastOffset() float64 { return t.lastOffset }

// Sample returns the speed of the latest notification once; later calls
// return 0 until a new notification arrives.
func (t *ScrollTracker) Sample() float64 {
	if !t.fresh {
		return 0
	}
	t.fresh = false
	return t.speed
}

// Close unsubscribes the tracker from its source.
func (t *ScrollTracker) Close() {
	t.sub.Remove()
	t.sub = CallbackHandle{}
}
