package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/p33ly/pfp"
)

// noOverlay is the --frame value that selects no overlay.
const noOverlay = "none"

// errSequenceNoOverlay is returned for --frames without an overlay to animate.
var errSequenceNoOverlay = errors.New("frame sequence needs an overlay; pass --frame")

// renderOpts holds the flags for the render command.
type renderOpts struct {
	base     string // picture file
	hat      string // adornment key; empty means none
	frame    string // overlay key; "none" removes it, empty keeps the default
	scale    float64
	rotation float64
	offsetX  float64
	offsetY  float64

	overlaySize     int
	overlayOpacity  int
	overlayRotation float64
	animate         bool

	script   string        // JSON editing script
	output   string        // explicit output file; overrides the export dir and name
	label    string        // suffix for the export name
	frames   int           // >1 renders an animated sequence
	interval time.Duration // time between animation frames
	debug    bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{frames: 1, interval: 100 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compose a picture without opening a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.base == "" && opts.script == "" {
				return errors.New("render: --base or --script is required")
			}
			return c.runRender(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.base, "base", "", "picture file to decorate")
	f.StringVar(&opts.hat, "hat", "", "hat key, e.g. hat1")
	f.StringVar(&opts.frame, "frame", "", "frame key, e.g. frame2, or none")
	f.Float64Var(&opts.scale, "scale", 1, "hat scale (0.3 to 10)")
	f.Float64Var(&opts.rotation, "rotation", 0, "hat rotation in degrees")
	f.Float64Var(&opts.offsetX, "offset-x", 0, "hat offset from the canvas center")
	f.Float64Var(&opts.offsetY, "offset-y", -20, "hat offset from the canvas center")
	f.IntVar(&opts.overlaySize, "overlay-size", 0, "frame size percent (50 to 150)")
	f.IntVar(&opts.overlayOpacity, "overlay-opacity", 0, "frame opacity percent (10 to 100)")
	f.Float64Var(&opts.overlayRotation, "overlay-rotation", 0, "frame rotation in degrees")
	f.BoolVar(&opts.animate, "animate", false, "spin the frame")
	f.StringVar(&opts.script, "script", "", "JSON editing script to replay")
	f.StringVarP(&opts.output, "output", "o", "", "output file")
	f.StringVar(&opts.label, "label", "", "suffix added to the export name")
	f.IntVar(&opts.frames, "frames", 1, "number of frames to render while the frame spins")
	f.DurationVar(&opts.interval, "interval", opts.interval, "time between animation frames")
	f.BoolVar(&opts.debug, "debug", false, "log render timings")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	format, err := cfg.Format()
	if err != nil {
		return err
	}
	e, err := cfg.NewSession(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	e.SetDebugMode(opts.debug)

	if opts.base != "" {
		if err := loadPicture(e, opts.base); err != nil {
			return err
		}
	}
	if err := applyRenderFlags(e, cmd, opts); err != nil {
		return err
	}

	if opts.script != "" {
		r, err := pfp.LoadScriptFile(opts.script)
		if err != nil {
			return err
		}
		r.ExportDir, r.Format = cfg.ExportDir, format
		prog := newProgress(logger)
		if err := r.Run(ctx, e, 0); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Replayed %s, %d exports", filepath.Base(opts.script), len(r.Exported())))
		for _, p := range r.Exported() {
			logger.Info("saved", "path", p)
		}
		if opts.base == "" {
			return nil
		}
	}

	if opts.frames > 1 {
		return renderSequence(ctx, e, cfg.ExportDir, format, opts)
	}
	return renderOne(ctx, e, cfg.ExportDir, format, opts)
}

// applyRenderFlags sets the selection, transform and overlay from the flags
// the user gave. Unset flags leave the session defaults alone.
func applyRenderFlags(e *pfp.Editor, cmd *cobra.Command, opts *renderOpts) error {
	f := cmd.Flags()
	if opts.hat != "" {
		if err := e.SelectAdornment(opts.hat); err != nil {
			return err
		}
	}
	switch opts.frame {
	case "":
	case noOverlay:
		_ = e.SelectOverlay("")
	default:
		if err := e.SelectOverlay(opts.frame); err != nil {
			return err
		}
	}
	if f.Changed("scale") || f.Changed("rotation") || f.Changed("offset-x") || f.Changed("offset-y") {
		e.SetTransform(pfp.AdornmentTransform{
			Scale:           opts.scale,
			RotationDegrees: opts.rotation,
			OffsetX:         opts.offsetX,
			OffsetY:         opts.offsetY,
		})
	}
	if f.Changed("overlay-size") {
		e.SetOverlaySize(opts.overlaySize)
	}
	if f.Changed("overlay-opacity") {
		e.SetOverlayOpacity(opts.overlayOpacity)
	}
	if f.Changed("overlay-rotation") {
		e.SetOverlayRotation(opts.overlayRotation)
	}
	if f.Changed("animate") {
		e.SetOverlayAnimating(opts.animate)
	}
	return nil
}

func renderOne(ctx context.Context, e *pfp.Editor, dir string, format pfp.ExportFormat, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	if opts.output == "" {
		p, err := e.ExportFile(dir, format, opts.label)
		if err != nil {
			return err
		}
		logger.Info("saved", "path", p)
		return nil
	}
	if err := writeExport(e, opts.output, format); err != nil {
		return err
	}
	logger.Info("saved", "path", opts.output)
	return nil
}

func writeExport(e *pfp.Editor, path string, format pfp.ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Export(f, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// renderSequence renders opts.frames frames of the spinning overlay,
// opts.interval apart, each exported with its frame number as the label.
func renderSequence(ctx context.Context, e *pfp.Editor, dir string, format pfp.ExportFormat, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	if e.Selection().Base == nil {
		return pfp.ErrNoBaseImage
	}
	if e.Selection().OverlayID == "" {
		return errSequenceNoOverlay
	}
	if !e.Overlay().Animating {
		e.SetOverlayAnimating(true)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	prog := newProgress(logger)
	n := 0
	err := e.Animate(ctx, pfp.FrameTicks(time.Now(), opts.interval, opts.frames),
		func(_ *image.RGBA, _ time.Time) error {
			label := fmt.Sprintf("%03d", n)
			if opts.label != "" {
				label = opts.label + "_" + label
			}
			n++
			return writeExport(e, filepath.Join(dir, pfp.ExportName(format, label)), format)
		})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d frames to %s", n, dir))
	return nil
}
