package ripple

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticLeave
	syntheticWheel
	syntheticResize
)

// syntheticEvent is a single injected input event. Coordinates are viewport
// pixels, identical to real cursor input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectMove queues a pointer move to (x, y). The event is consumed on the
// next frame's processInput call.
func (e *Effect) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectLeave queues the pointer leaving the viewport.
func (e *Effect) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectWheel queues a wheel delta in content pixels. Positive values scroll
// down.
func (e *Effect) InjectWheel(dy float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticWheel, y: dy})
}

// InjectResize queues a viewport resize.
func (e *Effect) InjectResize(w, h int) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticResize, x: float64(w), y: float64(h)})
}

// InjectSweep queues pointer moves from (fromX, fromY) to (toX, toY), one per
// frame over the given number of frames. Minimum frames is 2.
func (e *Effect) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (host input should be skipped).
func (e *Effect) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		e.pointerMove(evt.x, evt.y)
	case syntheticLeave:
		e.pointerLeave()
	case syntheticWheel:
		e.scroller.Wheel(evt.y)
	case syntheticResize:
		e.resize(int(evt.x), int(evt.y))
	}
	return true
}
