package pfp

import "math"

// HitShape is a hit region in canvas coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// ControlButton is one on-canvas control affordance.
type ControlButton struct {
	Mode   ControlMode
	Center Vec2
	Radius float64
	Color  string // fill, as a hex string
}

// Shape returns the button's hit region.
func (b ControlButton) Shape() HitCircle {
	return HitCircle{CenterX: b.Center.X, CenterY: b.Center.Y, Radius: b.Radius}
}

// Control affordance fill colors.
const (
	MoveColor   = "#3b82f6" // blue
	ResizeColor = "#f59e0b" // amber
	RotateColor = "#10b981" // green
)

// controlOffset is the diagonal distance from the adornment center to the
// control centers. It grows with the adornment and never drops below
// controlMinOffset so the controls stay clear of a small adornment.
func controlOffset(t AdornmentTransform) float64 {
	return math.Max(t.BodyRadius()+controlGap, controlMinOffset)
}

// ControlLayout returns the three control affordances for t in hit-test
// order: Move at the top-left diagonal, Resize at the top-right diagonal,
// Rotate at bottom center. The renderer draws exactly this layout.
func ControlLayout(t AdornmentTransform) [3]ControlButton {
	c := t.Center()
	off := controlOffset(t)
	return [3]ControlButton{
		{Mode: ModeMove, Center: Vec2{c.X - off, c.Y - off}, Radius: controlRadius, Color: MoveColor},
		{Mode: ModeResize, Center: Vec2{c.X + off, c.Y - off}, Radius: controlRadius, Color: ResizeColor},
		{Mode: ModeRotate, Center: Vec2{c.X, c.Y + off}, Radius: controlRadius, Color: RotateColor},
	}
}

// IsInsideAdornment reports whether p lies within the circular body region of
// the adornment. The circle approximates the image silhouette.
func IsInsideAdornment(p Vec2, t AdornmentTransform) bool {
	c := t.Center()
	return HitCircle{CenterX: c.X, CenterY: c.Y, Radius: t.BodyRadius()}.Contains(p.X, p.Y)
}

// HitControlAffordance returns the mode of the first control affordance whose
// circle contains p, or ModeNone.
func HitControlAffordance(p Vec2, t AdornmentTransform) ControlMode {
	for _, b := range ControlLayout(t) {
		if b.Shape().Contains(p.X, p.Y) {
			return b.Mode
		}
	}
	return ModeNone
}

// Classify decides what a press at p grabs. Controls are tested before the
// body because they are drawn on top; a body hit means Move. With no
// adornment selected nothing can be grabbed.
func Classify(p Vec2, t AdornmentTransform, selected bool) ControlMode {
	if !selected {
		return ModeNone
	}
	if m := HitControlAffordance(p, t); m != ModeNone {
		return m
	}
	if IsInsideAdornment(p, t) {
		return ModeMove
	}
	return ModeNone
}
