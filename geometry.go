package pfp

import (
	"math"

	"golang.org/x/image/math/f64"
)

// ToCanvasSpace maps a pointer event's client coordinates into the canvas
// coordinate space by linear rescaling against the canvas's displayed
// bounding box. Touch events use their first touch point; when a touch event
// carries no touches (a finger lift) the client coordinates are used. A
// degenerate box maps everything to the origin.
func ToCanvasSpace(ev PointerEvent, box Rect) Vec2 {
	if box.Width <= 0 || box.Height <= 0 {
		return Vec2{}
	}
	cx, cy := ev.ClientX, ev.ClientY
	if ev.Touch && len(ev.Touches) > 0 {
		cx, cy = ev.Touches[0].X, ev.Touches[0].Y
	}
	return Vec2{
		X: (cx - box.X) / box.Width * CanvasSize,
		Y: (cy - box.Y) / box.Height * CanvasSize,
	}
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Vec2) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// AngleDegrees returns atan2(dy, dx) in degrees. With Y growing downward a
// positive angle is clockwise on screen, and zero points along +X.
func AngleDegrees(dx, dy float64) float64 {
	return math.Atan2(dy, dx) * 180 / math.Pi
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// --- Affine helpers ---
//
// Matrix layout: [a, b, c, d, tx, ty]
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

// multiplyAffine multiplies two 2D affine matrices: result = p * c.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func translateAffine(x, y float64) [6]float64 { return [6]float64{1, 0, 0, 1, x, y} }

func scaleAffine(sx, sy float64) [6]float64 { return [6]float64{sx, 0, 0, sy, 0, 0} }

// rotateAffine rotates by rad radians, clockwise on a Y-down screen.
func rotateAffine(rad float64) [6]float64 {
	sin, cos := math.Sincos(rad)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// placementTransform maps a srcW x srcH source image onto a size x size
// square centered at (cx, cy) and rotated by rad about that center.
//
// Composition order:
//
//	Scale(size/srcW, size/srcH) -> Translate(-size/2, -size/2) -> Rotate -> Translate(cx, cy)
func placementTransform(cx, cy, rad, size float64, srcW, srcH int) [6]float64 {
	m := translateAffine(cx, cy)
	m = multiplyAffine(m, rotateAffine(rad))
	m = multiplyAffine(m, translateAffine(-size/2, -size/2))
	return multiplyAffine(m, scaleAffine(size/float64(srcW), size/float64(srcH)))
}

// toAff3 converts the column layout used here to x/image's row-major form.
func toAff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}
