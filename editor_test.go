package pfp

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestEditorNotReadyBeforeLoad(t *testing.T) {
	e := NewEditor()
	if e.Ready() {
		t.Fatal("new editor reports ready")
	}
	if err := e.Render(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Render = %v, want ErrNotReady", err)
	}
	if _, ok := e.Frame(); ok {
		t.Error("frame exists before any render")
	}
}

func TestEditorDefaultsAfterLoad(t *testing.T) {
	e := newReadyEditor(t)
	if got := e.Selection().OverlayID; got != "frame1" {
		t.Errorf("default overlay = %q, want frame1", got)
	}
	if got := e.Selection().AdornmentID; got != "" {
		t.Errorf("default adornment = %q, want none", got)
	}
	if e.Transform() != DefaultAdornmentTransform() {
		t.Errorf("transform = %+v", e.Transform())
	}
	if e.Overlay() != DefaultOverlaySettings() {
		t.Errorf("overlay = %+v", e.Overlay())
	}
}

func TestEditorRenderWithoutBaseDrawsNothing(t *testing.T) {
	e := newReadyEditor(t)
	if err := e.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, ok := e.Frame(); ok {
		t.Error("frame produced without a base picture")
	}
}

func TestEditorLoadFailureStaysNotReady(t *testing.T) {
	src := testSource(t)
	delete(src, "frame2.png")
	e := NewEditor()
	err := e.LoadAssets(context.Background(), src, DefaultManifest())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadAssets = %v, want not-exist", err)
	}
	if e.Ready() || e.Assets() != nil {
		t.Error("failed load left the editor ready")
	}
}

func TestEditorSelectAdornment(t *testing.T) {
	e := newReadyEditor(t)
	if err := e.SelectAdornment("hat9"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("unknown key: %v, want ErrUnknownAsset", err)
	}
	if err := e.SelectAdornment("hat3"); err != nil {
		t.Fatal(err)
	}
	if e.Selection().AdornmentID != "hat3" {
		t.Errorf("AdornmentID = %q", e.Selection().AdornmentID)
	}
	if err := e.SelectOverlay("nope"); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("unknown overlay: %v", err)
	}
}

func TestEditorTransformPersistsAcrossDeselect(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectAdornment("hat1")
	e.SetAdornmentScale(2.5)
	e.SetAdornmentOffset(30, 40)
	_ = e.SelectAdornment("")
	_ = e.SelectAdornment("hat2")
	want := AdornmentTransform{Scale: 2.5, OffsetX: 30, OffsetY: 40}
	if e.Transform() != want {
		t.Errorf("transform = %+v, want %+v", e.Transform(), want)
	}
}

func TestEditorDeselectEndsDrag(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectAdornment("hat1")
	e.handleCanvasPointer(PointerDown, Vec2{200, 180})
	_ = e.SelectAdornment("")
	if e.Gesture().State() != GestureIdle {
		t.Error("drag survived deselection")
	}
	if e.handleCanvasPointer(PointerMove, Vec2{250, 250}) {
		t.Error("move after deselect changed the transform")
	}
}

func TestEditorNumericClamps(t *testing.T) {
	e := newReadyEditor(t)
	tests := []struct {
		name  string
		apply func()
		check func() bool
	}{
		{"scale high", func() { e.SetAdornmentScale(50) }, func() bool { return e.Transform().Scale == MaxAdornmentScale }},
		{"scale low", func() { e.SetAdornmentScale(0) }, func() bool { return e.Transform().Scale == MinAdornmentScale }},
		{"size high", func() { e.SetOverlaySize(400) }, func() bool { return e.Overlay().SizePercent == MaxOverlaySize }},
		{"size low", func() { e.SetOverlaySize(1) }, func() bool { return e.Overlay().SizePercent == MinOverlaySize }},
		{"opacity low", func() { e.SetOverlayOpacity(-5) }, func() bool { return e.Overlay().OpacityPercent == MinOverlayOpacity }},
		{"rotation unbounded", func() { e.SetAdornmentRotation(725) }, func() bool { return e.Transform().RotationDegrees == 725 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			if !tt.check() {
				t.Errorf("transform %+v overlay %+v", e.Transform(), e.Overlay())
			}
		})
	}
}

func TestEditorHandlePointerScaledBox(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectAdornment("hat1")
	box := Rect{X: 100, Y: 50, Width: 800, Height: 800} // displayed at 2x

	e.HandlePointer(PointerEvent{Kind: PointerDown, ClientX: 100 + 400, ClientY: 50 + 320}, box)
	changed := e.HandlePointer(PointerEvent{Kind: PointerMove, ClientX: 100 + 440, ClientY: 50 + 360}, box)
	e.HandlePointer(PointerEvent{Kind: PointerUp, ClientX: 100 + 440, ClientY: 50 + 360}, box)

	if !changed {
		t.Error("move reported no change")
	}
	assertNear(t, "OffsetX", e.Transform().OffsetX, 20)
	assertNear(t, "OffsetY", e.Transform().OffsetY, 0)
}

func TestEditorNeedsRedraw(t *testing.T) {
	e := newReadyEditor(t)
	e.SetBaseImage(solidImage(4, 4, baseColor))
	if !e.NeedsRedraw() {
		t.Fatal("fresh state should need a redraw")
	}
	if err := e.Render(); err != nil {
		t.Fatal(err)
	}
	if e.NeedsRedraw() {
		t.Error("clean static state should not need a redraw")
	}
	e.SetOverlayAnimating(true)
	_ = e.Render()
	if !e.NeedsRedraw() {
		t.Error("animating overlay should always need a redraw")
	}
	_ = e.SelectOverlay("")
	_ = e.Render()
	if e.NeedsRedraw() {
		t.Error("animating flag with no overlay should not redraw")
	}
	_ = e.Close()
	if e.NeedsRedraw() {
		t.Error("closed editor should not redraw")
	}
}
