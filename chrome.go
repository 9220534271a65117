package pfp

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// controlOutlineColor strokes every control affordance.
const controlOutlineColor = "#ffffff"

// drawControls rasterizes the control affordances into a transparent layer
// and composites it over dst. The layer context is reused across frames.
func (r *Renderer) drawControls(dst *image.RGBA, buttons [3]ControlButton) error {
	if r.chrome == nil {
		r.chrome = gg.NewContext(CanvasSize, CanvasSize)
	}
	dc := r.chrome
	dc.Clear()
	dc.SetLineWidth(controlOutline)

	for _, b := range buttons {
		dc.DrawCircle(b.Center.X, b.Center.Y, b.Radius)
		dc.SetHexColor(b.Color)
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("draw %s control: %w", b.Mode, err)
		}
		dc.SetHexColor(controlOutlineColor)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("draw %s control outline: %w", b.Mode, err)
		}
	}

	draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, draw.Over)
	return nil
}
