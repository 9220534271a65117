package pfp

// syntheticPointerEvent is one injected pointer event in canvas coordinates.
type syntheticPointerEvent struct {
	kind PointerKind
	pos  Vec2
}

// InjectPress queues a pointer press at the given canvas coordinates. The
// event is consumed by the next Update.
func (e *Editor) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: PointerDown, pos: Vec2{x, y}})
}

// InjectMove queues a pointer move to the given canvas coordinates.
func (e *Editor) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: PointerMove, pos: Vec2{x, y}})
}

// InjectRelease queues a pointer release at the given canvas coordinates.
func (e *Editor) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: PointerUp, pos: Vec2{x, y}})
}

// InjectLeave queues the pointer leaving the canvas at the given coordinates.
func (e *Editor) InjectLeave(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{kind: PointerLeave, pos: Vec2{x, y}})
}

// InjectDrag queues a full drag sequence: a press at (fromX, fromY), `moves`
// linearly interpolated moves ending exactly on (toX, toY), and a release
// there. The sequence consumes moves+2 Updates; moves below 1 is treated as 1.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, moves int) {
	if moves < 1 {
		moves = 1
	}
	e.InjectPress(fromX, fromY)
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued injected events.
func (e *Editor) PendingInput() int { return len(e.injectQueue) }

// processInjectedInput pops one queued event and feeds it through the
// gesture machine. Returns true if an event was consumed.
func (e *Editor) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	e.injectQueue = e.injectQueue[1:]
	e.handleCanvasPointer(evt.kind, evt.pos)
	return true
}
