package pfp

import "testing"

func TestInjectDragQueue(t *testing.T) {
	e := newReadyEditor(t)
	e.InjectDrag(0, 0, 100, 0, 4)
	if got := e.PendingInput(); got != 6 {
		t.Fatalf("PendingInput = %d, want 6 (press, 4 moves, release)", got)
	}
	want := []syntheticPointerEvent{
		{PointerDown, Vec2{0, 0}},
		{PointerMove, Vec2{25, 0}},
		{PointerMove, Vec2{50, 0}},
		{PointerMove, Vec2{75, 0}},
		{PointerMove, Vec2{100, 0}},
		{PointerUp, Vec2{100, 0}},
	}
	for i, w := range want {
		if e.injectQueue[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, e.injectQueue[i], w)
		}
	}
}

func TestInjectDragMinimumMoves(t *testing.T) {
	e := newReadyEditor(t)
	e.InjectDrag(0, 0, 10, 10, 0)
	if got := e.PendingInput(); got != 3 {
		t.Errorf("PendingInput = %d, want 3", got)
	}
}

func TestInjectedDragMovesAdornment(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectAdornment("hat1")
	e.InjectDrag(200, 160, 220, 180, 3)

	updates := 0
	for e.PendingInput() > 0 {
		e.Update(1.0 / 60)
		updates++
	}
	if updates != 5 {
		t.Errorf("drained in %d updates, want 5", updates)
	}
	assertNear(t, "OffsetX", e.Transform().OffsetX, 20)
	assertNear(t, "OffsetY", e.Transform().OffsetY, 0)
	if e.Gesture().State() != GestureIdle {
		t.Error("drag still active after release")
	}
}

func TestInjectOneEventPerUpdate(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectAdornment("hat1")
	e.InjectPress(200, 180)
	e.InjectMove(230, 180)
	e.Update(0)
	if e.Gesture().State() != GestureDragging {
		t.Fatal("press not processed")
	}
	if e.Transform().OffsetX != 0 {
		t.Error("move processed in the same update as the press")
	}
	e.Update(0)
	assertNear(t, "OffsetX", e.Transform().OffsetX, 30)
	e.InjectLeave(500, 180)
	e.Update(0)
	if e.Gesture().State() != GestureIdle {
		t.Error("leave did not end the drag")
	}
}
