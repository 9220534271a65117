package pfp

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultResetDuration is how long an eased adornment reset takes, in seconds.
const DefaultResetDuration = 0.25

// TweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each tick; values are written through to the fields.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// add appends a tween moving *field to `to`.
func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenTransform creates a TweenGroup that moves every field of t to the
// corresponding field of to over duration seconds.
func TweenTransform(t *AdornmentTransform, to AdornmentTransform, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&t.Scale, to.Scale, duration, fn)
	g.add(&t.RotationDegrees, to.RotationDegrees, duration, fn)
	g.add(&t.OffsetX, to.OffsetX, duration, fn)
	g.add(&t.OffsetY, to.OffsetY, duration, fn)
	return g
}

// ResetAdornment returns the adornment transform to its defaults, easing
// over duration seconds as Update is called. A non-positive duration resets
// immediately. Starting a drag or writing the transform directly abandons
// the easing.
func (e *Editor) ResetAdornment(duration float32) {
	e.gesture.Cancel()
	if duration <= 0 {
		e.SetTransform(DefaultAdornmentTransform())
		return
	}
	e.reset = TweenTransform(&e.transform, DefaultAdornmentTransform(), duration, ease.OutQuad)
	e.dirty = true
}

// Resetting reports whether an eased reset is in progress.
func (e *Editor) Resetting() bool { return e.reset != nil }
