package pfp

import "time"

// debugSlowFrame is the render time above which a frame is reported at warn
// level in debug mode.
const debugSlowFrame = 16 * time.Millisecond

// SetDebugMode enables per-frame render timings and placement warnings,
// reported through the package logger at debug level.
func (e *Editor) SetDebugMode(enabled bool) { e.debug = enabled }

// DebugMode reports whether debug reporting is on.
func (e *Editor) DebugMode() bool { return e.debug }

// debugLog reports one frame's stage timings.
func (e *Editor) debugLog(stats RenderStats) {
	if !e.debug {
		return
	}
	total := stats.Total()
	l := logger()
	l.Debug("frame",
		"base", stats.Base, "overlay", stats.Overlay,
		"adornment", stats.Adornment, "controls", stats.Controls,
		"total", total)
	if total > debugSlowFrame {
		l.Warn("slow frame", "total", total, "budget", debugSlowFrame)
	}
	debugCheckPlacement(e.transform, e.sel.AdornmentID != "")
}

// debugCheckPlacement warns when the selected adornment's body lies entirely
// outside the canvas, where it can no longer be grabbed.
func debugCheckPlacement(t AdornmentTransform, selected bool) {
	if !selected {
		return
	}
	c := t.Center()
	r := t.BodyRadius()
	body := Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}
	if !body.Intersects(CanvasRect) {
		logger().Warn("adornment off canvas", "x", c.X, "y", c.Y, "radius", r)
	}
}
