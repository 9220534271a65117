package pfp

import "math"

// CanvasSize is the width and height of the logical canvas. Geometry, hit
// testing and rendering all operate in this 400x400 space regardless of the
// physical size the canvas is displayed at.
const CanvasSize = 400

const (
	canvasCenter = CanvasSize / 2.0

	adornmentBaseRadius = 60.0  // body hit radius at scale 1
	adornmentBaseSize   = 120.0 // drawn square edge at scale 1

	controlRadius    = 15.0
	controlGap       = 25.0 // distance between the body rim and a control center
	controlMinOffset = 37.0 // floor for the control offset on small adornments
	controlOutline   = 2.0

	// MinAdornmentScale and MaxAdornmentScale bound AdornmentTransform.Scale.
	MinAdornmentScale = 0.3
	MaxAdornmentScale = 10.0

	resizeRate = 0.01 // scale units per canvas unit of pointer travel

	// DefaultOverlaySpin is the animated overlay rotation rate in radians per
	// millisecond of wall-clock time.
	DefaultOverlaySpin = 0.002
)

// Vec2 is a 2D point or displacement in canvas space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// CanvasRect is the canvas displayed at its logical size at the origin.
var CanvasRect = Rect{Width: CanvasSize, Height: CanvasSize}

// ControlMode identifies what a press grabbed: one of the three control
// affordances, or nothing.
type ControlMode uint8

const (
	ModeNone   ControlMode = iota // nothing grabbed
	ModeMove                      // translate the adornment
	ModeResize                    // grow the adornment
	ModeRotate                    // turn the adornment
)

// String returns the lower-case mode name.
func (m ControlMode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	case ModeRotate:
		return "rotate"
	default:
		return "none"
	}
}

// PointerKind identifies an event in the normalized pointer stream.
type PointerKind uint8

const (
	PointerDown  PointerKind = iota // button pressed or finger touched
	PointerMove                     // pointer moved, pressed or not
	PointerUp                       // button released or finger lifted
	PointerLeave                    // pointer left the canvas
)

// String returns the lower-case event name.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// PointerEvent is one event of the normalized pointer stream. Coordinates are
// client (screen) coordinates. For touch input only the first entry of
// Touches is used; multi-touch is not interpreted.
type PointerEvent struct {
	Kind    PointerKind
	ClientX float64
	ClientY float64
	Touch   bool
	Touches []Vec2
}
