package pfp

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"
)

// ErrNotReady is returned by rendering and export before the asset set has
// finished loading.
var ErrNotReady = errors.New("pfp: assets not loaded")

// Editor is the application state: loaded assets, the user's selection, the
// adornment transform, overlay settings, the gesture machine and the last
// rendered frame.
//
// An Editor is single-owner. Pointer handling, numeric control writes,
// Update and Render must all be called from the same goroutine; no locking
// is done.
type Editor struct {
	assets *Assets
	ready  bool
	closed bool
	debug  bool

	sel       Selection
	transform AdornmentTransform
	overlay   OverlaySettings

	gesture  GestureMachine
	renderer *Renderer
	clock    func() time.Time

	frame    *image.RGBA
	rendered bool // frame holds the output of the last Render
	dirty    bool

	injectQueue []syntheticPointerEvent
	reset       *TweenGroup
	script      *ScriptRunner
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock sets the time source used for overlay animation.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.clock = now }
}

// WithBackground sets the canvas fill behind the base picture.
func WithBackground(c color.Color) Option {
	return func(e *Editor) { e.renderer.Background = c }
}

// WithOverlaySpin sets the animated overlay rate in radians per millisecond.
func WithOverlaySpin(radPerMs float64) Option {
	return func(e *Editor) { e.renderer.Spin = radPerMs }
}

// WithOverlaySettings sets the initial overlay settings.
func WithOverlaySettings(o OverlaySettings) Option {
	return func(e *Editor) { e.overlay = o.Clamp() }
}

// NewEditor creates an editor with default transform and overlay settings.
// It is not ready until assets are loaded.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		transform: DefaultAdornmentTransform(),
		overlay:   DefaultOverlaySettings(),
		renderer:  NewRenderer(),
		clock:     time.Now,
		frame:     NewCanvas(),
		dirty:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Assets ---

// LoadAssets decodes the manifest's assets from src. The editor becomes
// ready only when every asset decoded; on failure it stays not ready and
// keeps no partial set.
func (e *Editor) LoadAssets(ctx context.Context, src AssetSource, manifest AssetManifest) error {
	a, err := LoadAssets(ctx, src, manifest)
	if err != nil {
		return err
	}
	e.SetAssets(a)
	return nil
}

// SetAssets installs a complete asset set and marks the editor ready. The
// overlay selection defaults to the first overlay when none is selected.
func (e *Editor) SetAssets(a *Assets) {
	e.assets = a
	e.ready = a != nil
	if e.ready && e.sel.OverlayID == "" {
		e.sel.OverlayID = a.FirstOverlay()
	}
	e.dirty = true
}

// Ready reports whether assets are loaded.
func (e *Editor) Ready() bool { return e.ready }

// Assets returns the loaded asset set, or nil.
func (e *Editor) Assets() *Assets { return e.assets }

// --- Selection ---

// SetBaseImage replaces the base picture. nil clears it.
func (e *Editor) SetBaseImage(img image.Image) {
	e.sel.Base = img
	e.dirty = true
}

// SelectAdornment selects the adornment with the given key; "" selects none.
// The adornment transform is kept across selections. Deselecting ends any
// drag in progress.
func (e *Editor) SelectAdornment(key string) error {
	if key != "" {
		if _, ok := e.assets.Adornment(key); !ok {
			return fmt.Errorf("select adornment %q: %w", key, ErrUnknownAsset)
		}
	} else {
		e.gesture.Cancel()
	}
	e.sel.AdornmentID = key
	e.dirty = true
	return nil
}

// SelectOverlay selects the overlay with the given key; "" selects none.
func (e *Editor) SelectOverlay(key string) error {
	if key != "" {
		if _, ok := e.assets.Overlay(key); !ok {
			return fmt.Errorf("select overlay %q: %w", key, ErrUnknownAsset)
		}
	}
	e.sel.OverlayID = key
	e.dirty = true
	return nil
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection { return e.sel }

// --- Numeric controls ---

// Transform returns the adornment transform.
func (e *Editor) Transform() AdornmentTransform { return e.transform }

// SetTransform overwrites the adornment transform, clamping scale.
func (e *Editor) SetTransform(t AdornmentTransform) {
	e.reset = nil
	e.transform = t.Clamp()
	e.dirty = true
}

// SetAdornmentScale sets the adornment scale, clamped to its range.
func (e *Editor) SetAdornmentScale(s float64) {
	t := e.transform
	t.Scale = s
	e.SetTransform(t)
}

// SetAdornmentRotation sets the adornment rotation in degrees.
func (e *Editor) SetAdornmentRotation(deg float64) {
	t := e.transform
	t.RotationDegrees = deg
	e.SetTransform(t)
}

// SetAdornmentOffset sets the adornment offset from the canvas center.
func (e *Editor) SetAdornmentOffset(x, y float64) {
	t := e.transform
	t.OffsetX, t.OffsetY = x, y
	e.SetTransform(t)
}

// Overlay returns the overlay settings.
func (e *Editor) Overlay() OverlaySettings { return e.overlay }

// SetOverlay overwrites the overlay settings, clamping size and opacity.
func (e *Editor) SetOverlay(o OverlaySettings) {
	e.overlay = o.Clamp()
	e.dirty = true
}

// SetOverlaySize sets the overlay size percentage.
func (e *Editor) SetOverlaySize(pct int) {
	o := e.overlay
	o.SizePercent = pct
	e.SetOverlay(o)
}

// SetOverlayOpacity sets the overlay opacity percentage.
func (e *Editor) SetOverlayOpacity(pct int) {
	o := e.overlay
	o.OpacityPercent = pct
	e.SetOverlay(o)
}

// SetOverlayRotation sets the static overlay rotation in degrees.
func (e *Editor) SetOverlayRotation(deg float64) {
	o := e.overlay
	o.RotationDegrees = deg
	e.SetOverlay(o)
}

// SetOverlayAnimating starts or stops the time-driven overlay rotation.
func (e *Editor) SetOverlayAnimating(on bool) {
	o := e.overlay
	o.Animating = on
	e.SetOverlay(o)
}

// --- Pointer input ---

// Gesture returns the gesture machine, for registering callbacks.
func (e *Editor) Gesture() *GestureMachine { return &e.gesture }

// HandlePointer feeds one event of the normalized pointer stream. box is the
// canvas's displayed bounding box in client coordinates. Reports whether the
// adornment transform changed.
func (e *Editor) HandlePointer(ev PointerEvent, box Rect) bool {
	return e.handleCanvasPointer(ev.Kind, ToCanvasSpace(ev, box))
}

func (e *Editor) handleCanvasPointer(kind PointerKind, p Vec2) bool {
	switch kind {
	case PointerDown:
		if e.gesture.PointerDown(p, e.transform, e.sel.AdornmentID != "") {
			e.reset = nil
		}
	case PointerMove:
		if e.gesture.PointerMove(p, &e.transform) {
			e.dirty = true
			return true
		}
	case PointerUp:
		e.gesture.PointerUp(p)
	case PointerLeave:
		e.gesture.PointerLeave(p)
	}
	return false
}

// --- Frame loop ---

// Update advances one tick: it takes the attached script's next step, feeds
// at most one injected pointer event and advances an eased reset by dt
// seconds.
func (e *Editor) Update(dt float64) {
	if e.script != nil {
		e.script.step(e)
	}
	e.processInjectedInput()
	if e.reset != nil {
		e.reset.Update(float32(dt))
		e.dirty = true
		if e.reset.Done {
			e.reset = nil
		}
	}
}

// animating reports whether the overlay rotation follows the clock.
func (e *Editor) animating() bool {
	return !e.closed && e.ready && e.overlay.Animating && e.sel.OverlayID != ""
}

// NeedsRedraw reports whether the next display refresh should re-render:
// state changed since the last render, or the overlay is animating.
func (e *Editor) NeedsRedraw() bool {
	return !e.closed && (e.dirty || e.animating())
}

// Render composites the current state at the editor clock's time. It returns
// ErrNotReady before assets load. Without a base picture nothing is drawn and
// Frame reports no frame.
func (e *Editor) Render() error {
	return e.RenderAt(e.clock())
}

// RenderAt composites the current state as of now.
func (e *Editor) RenderAt(now time.Time) error {
	if !e.ready {
		return ErrNotReady
	}
	e.dirty = false
	if e.sel.Base == nil {
		e.rendered = false
		return nil
	}
	stats, err := e.renderer.Render(e.frame, e.layers(), now)
	if err != nil {
		e.rendered = false
		return fmt.Errorf("render: %w", err)
	}
	e.rendered = true
	if e.debug {
		e.debugLog(stats)
	}
	return nil
}

// layers gathers what the renderer draws for the current selection.
func (e *Editor) layers() Layers {
	l := Layers{
		Base:      e.sel.Base,
		Settings:  e.overlay,
		Transform: e.transform,
	}
	if img, ok := e.assets.Overlay(e.sel.OverlayID); ok {
		l.Overlay = img
	}
	if img, ok := e.assets.Adornment(e.sel.AdornmentID); ok {
		l.Adornment = img
		l.ShowControls = true
	}
	return l
}

// Frame returns the last rendered frame and whether one exists. The image is
// reused by the next Render.
func (e *Editor) Frame() (*image.RGBA, bool) {
	if !e.rendered {
		return nil, false
	}
	return e.frame, true
}

// --- Export ---

// Export encodes the last rendered frame to w. Pending state changes are
// rendered first so the export matches what the user sees. With no base
// picture it returns ErrNoBaseImage and writes nothing.
func (e *Editor) Export(w io.Writer, f ExportFormat) error {
	if e.sel.Base == nil {
		return ErrNoBaseImage
	}
	if e.dirty || !e.rendered {
		if err := e.Render(); err != nil {
			return err
		}
	}
	return encodeImage(w, e.frame, f)
}

// ExportFile writes the export into dir under the download name and returns
// the path written.
func (e *Editor) ExportFile(dir string, f ExportFormat, label string) (string, error) {
	if e.sel.Base == nil {
		return "", ErrNoBaseImage
	}
	if e.dirty || !e.rendered {
		if err := e.Render(); err != nil {
			return "", err
		}
	}
	path, err := exportPath(dir, f, label)
	if err != nil {
		return "", err
	}
	if err := writeImageFile(path, e.frame, f); err != nil {
		return "", err
	}
	logger().Info("exported", "path", path, "format", f)
	return path, nil
}

// Close stops animation redraws and releases renderer resources.
func (e *Editor) Close() error {
	e.closed = true
	e.gesture.Cancel()
	return e.renderer.Close()
}
