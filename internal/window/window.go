// Package window runs the editor interactively in an Ebitengine window.
package window

import (
	"context"
	"errors"
	"image/color"
	"io/fs"
	"path"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/p33ly/pfp"
)

// Options configures the window.
type Options struct {
	Title         string
	Scale         float64 // initial window size as a multiple of the canvas
	ExportDir     string
	Format        pfp.ExportFormat
	ResetDuration float32
	Background    color.Color // letterbox fill around the canvas
	ShowFPS       bool
	Logger        *log.Logger
}

// Game adapts an Editor to ebiten.Game.
type Game struct {
	ctx    context.Context
	editor *pfp.Editor
	opts   Options
	log    *log.Logger

	canvas   *ebiten.Image
	hasFrame bool
	width    int
	height   int

	pointer  pointerTracker
	touchBuf []ebiten.TouchID
	events   []pfp.PointerEvent
	cursor   ebiten.CursorShapeType
	fps      *fpsWidget
}

// NewGame wires e to a window. Gesture callbacks keep the cursor shape in
// step with the grabbed control.
func NewGame(ctx context.Context, e *pfp.Editor, opts Options) *Game {
	if opts.Title == "" {
		opts.Title = "P33ly PFP editor"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Background == nil {
		opts.Background = color.Gray{Y: 0x20}
	}
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	g := &Game{
		ctx:    ctx,
		editor: e,
		opts:   opts,
		log:    l,
		canvas: ebiten.NewImage(pfp.CanvasSize, pfp.CanvasSize),
	}
	if opts.ShowFPS {
		g.fps = newFPSWidget()
	}
	e.Gesture().OnGestureStart(func(c pfp.GestureContext) { g.cursor = cursorFor(c.Mode) })
	e.Gesture().OnGestureEnd(func(pfp.GestureContext) { g.cursor = ebiten.CursorShapeDefault })
	return g
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, e *pfp.Editor, opts Options) error {
	g := NewGame(ctx, e, opts)
	side := int(pfp.CanvasSize * g.opts.Scale)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(side, side)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if cerr := e.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.acceptDrops()
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			b.do(g)
		}
	}

	var s pointerSample
	s, g.touchBuf = g.pointer.readPointer(g.touchBuf)
	box := canvasBox(g.width, g.height)
	g.events = g.pointer.track(s, box, g.events[:0])
	for _, ev := range g.events {
		g.editor.HandlePointer(ev, box)
	}
	ebiten.SetCursorShape(g.cursor)

	dt := 1 / float64(ebiten.TPS())
	g.editor.Update(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)
	if g.editor.NeedsRedraw() {
		g.refresh()
	}
	if g.fps != nil {
		defer g.fps.draw(screen)
	}
	box := canvasBox(g.width, g.height)
	if !g.hasFrame {
		hint := "drop a picture onto the window"
		if !g.editor.Ready() {
			hint = "loading assets..."
		}
		ebitenutil.DebugPrintAt(screen, hint, int(box.X)+8, int(box.Y)+8)
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(box.Width/pfp.CanvasSize, box.Height/pfp.CanvasSize)
	op.GeoM.Translate(box.X, box.Y)
	screen.DrawImage(g.canvas, op)
}

// Layout implements ebiten.Game. The screen tracks the window size so the
// canvas is resampled once, at draw time.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// refresh renders the editor and uploads the frame.
func (g *Game) refresh() {
	if err := g.editor.Render(); err != nil {
		if !errors.Is(err, pfp.ErrNotReady) {
			g.log.Error("render failed", "err", err)
		}
		g.hasFrame = false
		return
	}
	frame, ok := g.editor.Frame()
	g.hasFrame = ok
	if ok {
		g.canvas.WritePixels(frame.Pix)
	}
}

// acceptDrops offers each dropped file to the editor as an upload; the first
// one that decodes becomes the base picture.
func (g *Game) acceptDrops() {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		g.log.Warn("reading dropped files", "err", err)
		return
	}
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		data, err := fs.ReadFile(files, ent.Name())
		if err != nil {
			g.log.Warn("reading dropped file", "name", ent.Name(), "err", err)
			continue
		}
		if g.editor.AcceptUpload(pfp.Upload{Name: path.Base(ent.Name()), Data: data}) {
			return
		}
	}
}

// export writes the current picture to the export directory.
func (g *Game) export() {
	p, err := g.editor.ExportFile(g.opts.ExportDir, g.opts.Format, "")
	switch {
	case errors.Is(err, pfp.ErrNoBaseImage):
		g.log.Warn("nothing to export: no picture loaded")
	case err != nil:
		g.log.Error("export failed", "err", err)
	default:
		g.log.Info("saved", "path", p)
	}
}
