package pfp

import (
	"image"
	"math"
	"time"
)

// AdornmentTransform places the adornment on the canvas. Offsets are relative
// to the canvas center. Scale is kept within [MinAdornmentScale,
// MaxAdornmentScale]; rotation is unbounded and never normalized.
type AdornmentTransform struct {
	Scale           float64
	RotationDegrees float64
	OffsetX         float64
	OffsetY         float64
}

// DefaultAdornmentTransform returns the transform a fresh editor starts with:
// unit scale, no rotation, lifted 20 units above center.
func DefaultAdornmentTransform() AdornmentTransform {
	return AdornmentTransform{Scale: 1, OffsetY: -20}
}

// Clamp returns t with Scale forced into the valid range.
func (t AdornmentTransform) Clamp() AdornmentTransform {
	t.Scale = clampScale(t.Scale)
	return t
}

// Center returns the adornment center in canvas space.
func (t AdornmentTransform) Center() Vec2 {
	return Vec2{canvasCenter + t.OffsetX, canvasCenter + t.OffsetY}
}

// BodyRadius returns the radius of the circular body hit region.
func (t AdornmentTransform) BodyRadius() float64 {
	return adornmentBaseRadius * t.Scale
}

// DrawSize returns the edge of the square the adornment image is drawn into.
func (t AdornmentTransform) DrawSize() float64 {
	return adornmentBaseSize * t.Scale
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinAdornmentScale
	}
	return max(MinAdornmentScale, min(MaxAdornmentScale, s))
}

// Overlay setting bounds.
const (
	MinOverlaySize    = 50
	MaxOverlaySize    = 150
	MinOverlayOpacity = 10
	MaxOverlayOpacity = 100
)

// OverlaySettings controls the decorative overlay. When Animating is set the
// effective rotation follows wall-clock time and RotationDegrees is ignored.
type OverlaySettings struct {
	SizePercent     int
	OpacityPercent  int
	RotationDegrees float64
	Animating       bool
}

// DefaultOverlaySettings returns full size, 80% opacity, no rotation.
func DefaultOverlaySettings() OverlaySettings {
	return OverlaySettings{SizePercent: 100, OpacityPercent: 80}
}

// Clamp returns o with size and opacity forced into their ranges.
func (o OverlaySettings) Clamp() OverlaySettings {
	o.SizePercent = max(MinOverlaySize, min(MaxOverlaySize, o.SizePercent))
	o.OpacityPercent = max(MinOverlayOpacity, min(MaxOverlayOpacity, o.OpacityPercent))
	return o
}

// Size returns the overlay edge length in canvas units.
func (o OverlaySettings) Size() float64 {
	return float64(o.SizePercent) / 100 * CanvasSize
}

// Opacity returns the overlay alpha in [0, 1].
func (o OverlaySettings) Opacity() float64 {
	return float64(o.OpacityPercent) / 100
}

// RotationAt returns the overlay rotation in radians at time now. spin is the
// animated rate in radians per millisecond; zero means DefaultOverlaySpin.
func (o OverlaySettings) RotationAt(now time.Time, spin float64) float64 {
	if !o.Animating {
		return degToRad(o.RotationDegrees)
	}
	if spin == 0 {
		spin = DefaultOverlaySpin
	}
	return float64(now.UnixMilli()) * spin
}

// Selection records what the user picked. It is independent of transform
// data: clearing AdornmentID leaves the adornment transform untouched.
type Selection struct {
	Base        image.Image // nil until a picture is uploaded
	AdornmentID string      // empty means no adornment
	OverlayID   string      // empty means no overlay
}
