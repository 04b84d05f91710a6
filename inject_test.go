package ripple

import "testing"

func TestInjectQueueOrder(t *testing.T) {
	e, _ := newTestEffect(t, 1)
	e.InjectMove(10, 20)
	e.InjectWheel(30)
	e.InjectResize(640, 480)
	e.InjectLeave()

	if len(e.injectQueue) != 4 {
		t.Fatalf("expected 4 events, got %d", len(e.injectQueue))
	}
	want := []syntheticKind{syntheticMove, syntheticWheel, syntheticResize, syntheticLeave}
	for i, k := range want {
		if e.injectQueue[i].kind != k {
			t.Errorf("event %d kind = %v, want %v", i, e.injectQueue[i].kind, k)
		}
	}
	if e.injectQueue[0].x != 10 || e.injectQueue[0].y != 20 {
		t.Error("first event should be a move to (10,20)")
	}
}

func TestProcessInjectedInputOnePerFrame(t *testing.T) {
	e, _ := newTestEffect(t, 1)
	e.InjectMove(1, 1)
	e.InjectMove(2, 2)

	if !e.processInjectedInput() {
		t.Fatal("expected an event to be consumed")
	}
	if len(e.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event, got %d", len(e.injectQueue))
	}
	if e.input.x != 1 || !e.input.inside {
		t.Errorf("input = %+v, want pointer at (1,1)", e.input)
	}
	e.processInjectedInput()
	if e.processInjectedInput() {
		t.Error("should not consume when queue is empty")
	}
}

func TestInjectSweep(t *testing.T) {
	e, _ := newTestEffect(t, 1)
	e.InjectSweep(0, 0, 100, 50, 5)
	if len(e.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(e.injectQueue))
	}
	first, last := e.injectQueue[0], e.injectQueue[4]
	if first.x != 0 || first.y != 0 || last.x != 100 || last.y != 50 {
		t.Errorf("sweep endpoints = (%v,%v) .. (%v,%v)", first.x, first.y, last.x, last.y)
	}
	if mid := e.injectQueue[2]; mid.x != 50 || mid.y != 25 {
		t.Errorf("midpoint = (%v,%v), want (50,25)", mid.x, mid.y)
	}
}

func TestInjectSweepMinFrames(t *testing.T) {
	e, _ := newTestEffect(t, 1)
	e.InjectSweep(0, 0, 100, 100, 1)
	if len(e.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", len(e.injectQueue))
	}
}

func TestInjectWheelScalesByWheelSpeed(t *testing.T) {
	e, _ := newTestEffect(t, 4)
	e.Scroller().WheelSpeed = 2
	e.InjectWheel(50)
	e.processInjectedInput()
	if e.Scroller().Target() != 100 {
		t.Errorf("Target = %v, want 100", e.Scroller().Target())
	}
}
