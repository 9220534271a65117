package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/p33ly/pfp"
)

// pointerSample is the raw pointer state read once per tick.
type pointerSample struct {
	X, Y    float64
	Pressed bool
	Touch   bool
}

// pointerTracker turns per-tick pointer samples into the edge-triggered
// event stream the editor consumes: down on the press edge inside the
// canvas, moves while the position changes inside it, up on the release
// edge, and leave when the pointer crosses out of the canvas.
type pointerTracker struct {
	pressed bool // button or finger held, wherever it went down
	down    bool // the held press started inside the canvas
	inside  bool
	seen    bool
	lastX   float64
	lastY   float64
	touch   bool
}

func (t *pointerTracker) track(s pointerSample, box pfp.Rect, out []pfp.PointerEvent) []pfp.PointerEvent {
	inside := box.Contains(s.X, s.Y)
	moved := !t.seen || s.X != t.lastX || s.Y != t.lastY
	ev := func(kind pfp.PointerKind) pfp.PointerEvent {
		e := pfp.PointerEvent{Kind: kind, ClientX: s.X, ClientY: s.Y, Touch: s.Touch}
		if s.Touch && s.Pressed {
			e.Touches = []pfp.Vec2{{X: s.X, Y: s.Y}}
		}
		return e
	}

	switch {
	case s.Pressed && !t.pressed:
		// A press that starts outside the canvas never reaches the editor.
		t.pressed = true
		if inside {
			t.down = true
			out = append(out, ev(pfp.PointerDown))
		}
	case !s.Pressed && t.pressed:
		t.pressed = false
		if t.down {
			t.down = false
			out = append(out, ev(pfp.PointerUp))
		}
	case moved && inside:
		out = append(out, ev(pfp.PointerMove))
	}
	if t.inside && !inside {
		out = append(out, ev(pfp.PointerLeave))
	}

	t.inside = inside
	t.seen = true
	t.lastX, t.lastY = s.X, s.Y
	t.touch = s.Touch
	return out
}

// readPointer samples the first touch if any finger is down, otherwise the
// mouse. A touch that just lifted reports a release at its last position.
func (t *pointerTracker) readPointer(touchBuf []ebiten.TouchID) (pointerSample, []ebiten.TouchID) {
	touchBuf = ebiten.AppendTouchIDs(touchBuf[:0])
	if len(touchBuf) > 0 {
		x, y := ebiten.TouchPosition(touchBuf[0])
		return pointerSample{X: float64(x), Y: float64(y), Pressed: true, Touch: true}, touchBuf
	}
	if t.touch && t.pressed {
		return pointerSample{X: t.lastX, Y: t.lastY, Touch: true}, touchBuf
	}
	x, y := ebiten.CursorPosition()
	return pointerSample{
		X:       float64(x),
		Y:       float64(y),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}, touchBuf
}

// canvasBox returns where the square canvas is displayed inside a w x h
// screen: as large as fits, centered.
func canvasBox(w, h int) pfp.Rect {
	side := float64(min(w, h))
	return pfp.Rect{
		X:      (float64(w) - side) / 2,
		Y:      (float64(h) - side) / 2,
		Width:  side,
		Height: side,
	}
}

// cursorFor returns the cursor shown while a gesture of the given mode is
// in progress.
func cursorFor(mode pfp.ControlMode) ebiten.CursorShapeType {
	switch mode {
	case pfp.ModeMove:
		return ebiten.CursorShapeMove
	case pfp.ModeResize:
		return ebiten.CursorShapeNESWResize
	case pfp.ModeRotate:
		return ebiten.CursorShapeCrosshair
	default:
		return ebiten.CursorShapeDefault
	}
}
