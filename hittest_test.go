package pfp

import (
	"math"
	"testing"
)

func TestControlLayoutDefaults(t *testing.T) {
	tr := DefaultAdornmentTransform() // center (200, 180)
	got := ControlLayout(tr)
	want := [3]struct {
		mode  ControlMode
		at    Vec2
		color string
	}{
		{ModeMove, Vec2{115, 95}, MoveColor},
		{ModeResize, Vec2{285, 95}, ResizeColor},
		{ModeRotate, Vec2{200, 265}, RotateColor},
	}
	for i, w := range want {
		if got[i].Mode != w.mode || got[i].Color != w.color {
			t.Errorf("button %d = %v %s, want %v %s", i, got[i].Mode, got[i].Color, w.mode, w.color)
		}
		assertVec(t, w.mode.String(), got[i].Center, w.at)
		assertNear(t, "radius", got[i].Radius, 15)
	}
}

func TestControlOffsetFloor(t *testing.T) {
	tests := []struct {
		scale, want float64
	}{
		{0.3, 43},  // 18+25
		{0.2, 37},  // below the clamp range the floor applies
		{1, 85},
		{10, 625},
	}
	for _, tt := range tests {
		assertNear(t, "offset", controlOffset(AdornmentTransform{Scale: tt.scale}), tt.want)
	}
}

func TestIsInsideAdornment(t *testing.T) {
	tr := AdornmentTransform{Scale: 2, OffsetX: 10, OffsetY: -20} // center (210, 180), r 120
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"center", Vec2{210, 180}, true},
		{"on the rim", Vec2{330, 180}, true},
		{"just outside", Vec2{330.01, 180}, false},
		{"far", Vec2{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsideAdornment(tt.p, tr); got != tt.want {
				t.Errorf("IsInsideAdornment(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tr := DefaultAdornmentTransform()
	tests := []struct {
		name     string
		p        Vec2
		selected bool
		want     ControlMode
	}{
		{"move control", Vec2{115, 95}, true, ModeMove},
		{"resize control", Vec2{285, 95}, true, ModeResize},
		{"resize control edge", Vec2{300, 95}, true, ModeResize},
		{"rotate control", Vec2{200, 265}, true, ModeRotate},
		{"body", Vec2{200, 160}, true, ModeMove},
		{"empty canvas", Vec2{20, 380}, true, ModeNone},
		{"control without selection", Vec2{285, 95}, false, ModeNone},
		{"body without selection", Vec2{200, 180}, false, ModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.p, tr, tt.selected); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestControlsNeverOverlap(t *testing.T) {
	for s := MinAdornmentScale; s <= MaxAdornmentScale; s += 0.05 {
		tr := AdornmentTransform{Scale: s}
		bs := ControlLayout(tr)
		for i := range bs {
			for j := i + 1; j < len(bs); j++ {
				d := Distance(bs[i].Center, bs[j].Center)
				if d <= bs[i].Radius+bs[j].Radius {
					t.Fatalf("scale %.2f: %v and %v overlap (distance %.2f)", s, bs[i].Mode, bs[j].Mode, d)
				}
			}
			// controls sit clear of the body circle
			d := Distance(bs[i].Center, tr.Center())
			if d-bs[i].Radius <= tr.BodyRadius() {
				t.Fatalf("scale %.2f: %v overlaps the body", s, bs[i].Mode)
			}
		}
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 10, CenterY: 10, Radius: 5}
	if !c.Contains(15, 10) {
		t.Error("point on the circle should hit")
	}
	if c.Contains(10+5*math.Cos(0.3)+0.01, 10+5*math.Sin(0.3)+0.01) {
		t.Error("point just outside should miss")
	}
}
