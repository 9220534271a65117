package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/p33ly/pfp"
)

// Numeric control steps for keyboard adjustments.
const (
	overlaySizeStep     = 5
	overlayOpacityStep  = 5
	overlayRotationStep = 5.0
	adornmentScaleStep  = 0.1
)

// binding maps a key to an editor action.
type binding struct {
	key ebiten.Key
	do  func(g *Game)
}

// bindings are checked on the just-pressed edge each tick.
var bindings = []binding{
	{ebiten.KeyDigit0, func(g *Game) { selectAdornment(g.editor, 0) }},
	{ebiten.KeyDigit1, func(g *Game) { selectAdornment(g.editor, 1) }},
	{ebiten.KeyDigit2, func(g *Game) { selectAdornment(g.editor, 2) }},
	{ebiten.KeyDigit3, func(g *Game) { selectAdornment(g.editor, 3) }},
	{ebiten.KeyDigit4, func(g *Game) { selectAdornment(g.editor, 4) }},
	{ebiten.KeyF, func(g *Game) { cycleOverlay(g.editor) }},
	{ebiten.KeyUp, func(g *Game) { adjustOverlaySize(g.editor, overlaySizeStep) }},
	{ebiten.KeyDown, func(g *Game) { adjustOverlaySize(g.editor, -overlaySizeStep) }},
	{ebiten.KeyBracketRight, func(g *Game) { adjustOverlayOpacity(g.editor, overlayOpacityStep) }},
	{ebiten.KeyBracketLeft, func(g *Game) { adjustOverlayOpacity(g.editor, -overlayOpacityStep) }},
	{ebiten.KeyRight, func(g *Game) { adjustOverlayRotation(g.editor, overlayRotationStep) }},
	{ebiten.KeyLeft, func(g *Game) { adjustOverlayRotation(g.editor, -overlayRotationStep) }},
	{ebiten.KeyA, func(g *Game) { g.editor.SetOverlayAnimating(!g.editor.Overlay().Animating) }},
	{ebiten.KeyEqual, func(g *Game) { adjustAdornmentScale(g.editor, adornmentScaleStep) }},
	{ebiten.KeyMinus, func(g *Game) { adjustAdornmentScale(g.editor, -adornmentScaleStep) }},
	{ebiten.KeyR, func(g *Game) { g.editor.ResetAdornment(g.opts.ResetDuration) }},
	{ebiten.KeyS, func(g *Game) { g.export() }},
}

// selectAdornment selects the n-th adornment (1-based); 0 selects none.
// Numbers past the loaded set are ignored.
func selectAdornment(e *pfp.Editor, n int) {
	if n == 0 {
		_ = e.SelectAdornment("")
		return
	}
	a := e.Assets()
	if a == nil || n > len(a.AdornmentKeys) {
		return
	}
	_ = e.SelectAdornment(a.AdornmentKeys[n-1])
}

// cycleOverlay advances to the next overlay, through "none" after the last.
func cycleOverlay(e *pfp.Editor) {
	a := e.Assets()
	if a == nil || len(a.OverlayKeys) == 0 {
		return
	}
	cur := e.Selection().OverlayID
	next := a.OverlayKeys[0]
	for i, k := range a.OverlayKeys {
		if k == cur {
			if i+1 < len(a.OverlayKeys) {
				next = a.OverlayKeys[i+1]
			} else {
				next = ""
			}
			break
		}
	}
	_ = e.SelectOverlay(next)
}

func adjustOverlaySize(e *pfp.Editor, d int) {
	e.SetOverlaySize(e.Overlay().SizePercent + d)
}

func adjustOverlayOpacity(e *pfp.Editor, d int) {
	e.SetOverlayOpacity(e.Overlay().OpacityPercent + d)
}

func adjustOverlayRotation(e *pfp.Editor, d float64) {
	e.SetOverlayRotation(e.Overlay().RotationDegrees + d)
}

func adjustAdornmentScale(e *pfp.Editor, d float64) {
	e.SetAdornmentScale(e.Transform().Scale + d)
}
