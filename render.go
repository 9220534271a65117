package pfp

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// DefaultBackground is the fill behind the base picture.
var DefaultBackground = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}

// Layers is everything the renderer draws for one frame. A nil image skips
// its stage.
type Layers struct {
	Base         image.Image
	Overlay      image.Image
	Settings     OverlaySettings
	Adornment    image.Image
	Transform    AdornmentTransform
	ShowControls bool
}

// RenderStats holds per-stage timings for one frame.
type RenderStats struct {
	Base      time.Duration
	Overlay   time.Duration
	Adornment time.Duration
	Controls  time.Duration
}

// Total returns the sum of all stages.
func (s RenderStats) Total() time.Duration {
	return s.Base + s.Overlay + s.Adornment + s.Controls
}

// Renderer composites Layers onto the canvas. Output depends only on the
// layers and, for an animating overlay, the time passed to Render.
type Renderer struct {
	Background color.Color
	Spin       float64 // animated overlay rate, radians per ms; zero means DefaultOverlaySpin

	chrome *gg.Context
}

// NewRenderer creates a renderer with the default background.
func NewRenderer() *Renderer {
	return &Renderer{Background: DefaultBackground, Spin: DefaultOverlaySpin}
}

// NewCanvas allocates a CanvasSize x CanvasSize target.
func NewCanvas() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
}

// Render draws one frame into dst in fixed back-to-front order: background,
// base picture stretched to the canvas, overlay, adornment, controls.
func (r *Renderer) Render(dst *image.RGBA, l Layers, now time.Time) (RenderStats, error) {
	var stats RenderStats

	t0 := time.Now()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	if l.Base != nil {
		draw.CatmullRom.Scale(dst, image.Rect(0, 0, CanvasSize, CanvasSize), l.Base, l.Base.Bounds(), draw.Over, nil)
	}
	stats.Base = time.Since(t0)

	t0 = time.Now()
	if l.Overlay != nil {
		s := l.Settings.Clamp()
		drawPlaced(dst, l.Overlay, canvasCenter, canvasCenter, s.RotationAt(now, r.Spin), s.Size(), s.Opacity())
	}
	stats.Overlay = time.Since(t0)

	t0 = time.Now()
	if l.Adornment != nil {
		c := l.Transform.Center()
		drawPlaced(dst, l.Adornment, c.X, c.Y, degToRad(l.Transform.RotationDegrees), l.Transform.DrawSize(), 1)
	}
	stats.Adornment = time.Since(t0)

	t0 = time.Now()
	if l.ShowControls {
		if err := r.drawControls(dst, ControlLayout(l.Transform)); err != nil {
			return stats, err
		}
	}
	stats.Controls = time.Since(t0)

	return stats, nil
}

// Close releases the control layer context.
func (r *Renderer) Close() error {
	if r.chrome == nil {
		return nil
	}
	err := r.chrome.Close()
	r.chrome = nil
	return err
}

// drawPlaced draws src into a size x size square centered at (cx, cy),
// rotated by rad and blended at the given opacity. Reports whether anything
// was drawn; placements entirely off the canvas are skipped.
func drawPlaced(dst *image.RGBA, src image.Image, cx, cy, rad, size, opacity float64) bool {
	b := src.Bounds()
	if size <= 0 || b.Empty() {
		return false
	}
	m := placementTransform(cx, cy, rad, size, b.Dx(), b.Dy())
	m = multiplyAffine(m, translateAffine(-float64(b.Min.X), -float64(b.Min.Y)))
	if !placedBounds(m, b).Intersects(CanvasRect) {
		return false
	}

	var opts *draw.Options
	if opacity < 1 {
		a := uint16(math.Round(max(0, opacity) * 0xffff))
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: a})}
	}
	draw.BiLinear.Transform(dst, toAff3(m), src, b, draw.Over, opts)
	return true
}

// placedBounds returns the canvas-space bounding box of src bounds b under m.
func placedBounds(m [6]float64, b image.Rectangle) Rect {
	corners := [4][2]float64{
		{float64(b.Min.X), float64(b.Min.Y)},
		{float64(b.Max.X), float64(b.Min.Y)},
		{float64(b.Min.X), float64(b.Max.Y)},
		{float64(b.Max.X), float64(b.Max.Y)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := transformPoint(m, c[0], c[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
