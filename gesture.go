package pfp

// GestureState is the state of the gesture machine.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no press in progress
	GestureDragging                     // a press grabbed the adornment or a control
)

// GestureSession exists only between a grabbing press and its release. The
// baseline is never mutated; every move is recomputed from it so repeated
// moves don't accumulate error.
type GestureSession struct {
	Mode     ControlMode
	Start    Vec2
	Baseline AdornmentTransform
}

// GestureContext carries gesture event data to callbacks.
type GestureContext struct {
	Mode      ControlMode
	Point     Vec2
	Delta     Vec2
	Transform AdornmentTransform
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureContext)
}

type gestureEvent uint8

const (
	gestureStart gestureEvent = iota
	gestureChange
	gestureEnd
)

type handlerRegistry struct {
	start  []gestureHandler
	change []gestureHandler
	end    []gestureHandler
	nextID uint32
}

// CallbackHandle allows removing a registered gesture callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event gestureEvent
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case gestureStart:
		h.reg.start = removeGestureHandler(h.reg.start, h.id)
	case gestureChange:
		h.reg.change = removeGestureHandler(h.reg.change, h.id)
	case gestureEnd:
		h.reg.end = removeGestureHandler(h.reg.end, h.id)
	}
}

func removeGestureHandler(s []gestureHandler, id uint32) []gestureHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event gestureEvent, fn func(GestureContext)) CallbackHandle {
	r.nextID++
	h := gestureHandler{id: r.nextID, fn: fn}
	switch event {
	case gestureStart:
		r.start = append(r.start, h)
	case gestureChange:
		r.change = append(r.change, h)
	case gestureEnd:
		r.end = append(r.end, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

func fire(hs []gestureHandler, ctx GestureContext) {
	for _, h := range hs {
		h.fn(ctx)
	}
}

// --- Gesture machine ---

// GestureMachine turns a press-drag-release pointer sequence into live updates
// of an AdornmentTransform. It is the only writer of the transform during a
// drag.
type GestureMachine struct {
	session  *GestureSession
	handlers handlerRegistry
}

// State reports whether a drag is in progress.
func (g *GestureMachine) State() GestureState {
	if g.session != nil {
		return GestureDragging
	}
	return GestureIdle
}

// Mode returns the mode of the active drag, or ModeNone when idle.
func (g *GestureMachine) Mode() ControlMode {
	if g.session == nil {
		return ModeNone
	}
	return g.session.Mode
}

// Session returns a copy of the active session and whether one exists.
func (g *GestureMachine) Session() (GestureSession, bool) {
	if g.session == nil {
		return GestureSession{}, false
	}
	return *g.session, true
}

// OnGestureStart registers a callback fired when a press grabs something.
func (g *GestureMachine) OnGestureStart(fn func(GestureContext)) CallbackHandle {
	return g.handlers.add(gestureStart, fn)
}

// OnGestureChange registers a callback fired after each drag update.
func (g *GestureMachine) OnGestureChange(fn func(GestureContext)) CallbackHandle {
	return g.handlers.add(gestureChange, fn)
}

// OnGestureEnd registers a callback fired when a drag ends by release or by
// the pointer leaving the canvas.
func (g *GestureMachine) OnGestureEnd(fn func(GestureContext)) CallbackHandle {
	return g.handlers.add(gestureEnd, fn)
}

// PointerDown classifies the press and, if it grabbed a control or the body,
// snapshots the baseline and enters Dragging. A press always discards any
// stale session first. Reports whether a drag started.
func (g *GestureMachine) PointerDown(p Vec2, t AdornmentTransform, selected bool) bool {
	g.session = nil
	mode := Classify(p, t, selected)
	if mode == ModeNone {
		return false
	}
	g.session = &GestureSession{Mode: mode, Start: p, Baseline: t}
	fire(g.handlers.start, GestureContext{Mode: mode, Point: p, Transform: t})
	return true
}

// PointerMove applies the drag to t when dragging and reports whether t
// changed. Moves while idle are ignored.
func (g *GestureMachine) PointerMove(p Vec2, t *AdornmentTransform) bool {
	if g.session == nil {
		return false
	}
	delta := p.Sub(g.session.Start)
	next := applyGesture(g.session.Mode, g.session.Baseline, *t, delta)
	if next == *t {
		return false
	}
	*t = next
	fire(g.handlers.change, GestureContext{Mode: g.session.Mode, Point: p, Delta: delta, Transform: next})
	return true
}

// PointerUp ends the drag. Changes made while dragging are kept; there is no
// commit or rollback. Reports whether a drag was active.
func (g *GestureMachine) PointerUp(p Vec2) bool {
	if g.session == nil {
		return false
	}
	s := g.session
	g.session = nil
	fire(g.handlers.end, GestureContext{Mode: s.Mode, Point: p, Delta: p.Sub(s.Start)})
	return true
}

// PointerLeave is treated exactly like PointerUp.
func (g *GestureMachine) PointerLeave(p Vec2) bool {
	return g.PointerUp(p)
}

// Cancel drops any session without firing callbacks. Used when the adornment
// is deselected mid-drag.
func (g *GestureMachine) Cancel() {
	g.session = nil
}

// applyGesture computes the transform for a drag displaced by delta from its
// start. Only the fields owned by mode change; the rest come from current so
// out-of-band writes made during the drag survive.
func applyGesture(mode ControlMode, baseline, current AdornmentTransform, delta Vec2) AdornmentTransform {
	switch mode {
	case ModeMove:
		current.OffsetX = baseline.OffsetX + delta.X
		current.OffsetY = baseline.OffsetY + delta.Y
	case ModeResize:
		current.Scale = clampScale(baseline.Scale + delta.Len()*resizeRate)
	case ModeRotate:
		current.RotationDegrees = baseline.RotationDegrees + AngleDegrees(delta.X, delta.Y)
	}
	return current
}
