package pfp

import (
	"context"
	"errors"
	"image"
	"time"
)

// ErrStopAnimation may be returned by an Animate frame callback to end the
// loop without error.
var ErrStopAnimation = errors.New("pfp: stop animation")

// FrameFunc receives each animation frame. The image is reused for the next
// frame and must not be retained.
type FrameFunc func(frame *image.RGBA, at time.Time) error

// Animate renders one frame per tick while the overlay is animating. It
// returns nil when animation is switched off, the editor is closed, the
// ticks channel closes or onFrame returns ErrStopAnimation, and ctx.Err()
// when ctx is done. Ticks that arrive while nothing is animating end the
// loop before rendering, so no frame is produced after the flag clears.
func (e *Editor) Animate(ctx context.Context, ticks <-chan time.Time, onFrame FrameFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok || !e.animating() {
				return nil
			}
			if err := e.RenderAt(now); err != nil {
				return err
			}
			frame, ok := e.Frame()
			if !ok || onFrame == nil {
				continue
			}
			if err := onFrame(frame, now); err != nil {
				if errors.Is(err, ErrStopAnimation) {
					return nil
				}
				return err
			}
		}
	}
}

// FrameTicks returns a channel delivering n synthetic times starting at start
// and spaced by interval. It is closed after the last time, which lets
// Animate drive deterministic headless renders.
func FrameTicks(start time.Time, interval time.Duration, n int) <-chan time.Time {
	ch := make(chan time.Time, max(n, 0))
	for i := range n {
		ch <- start.Add(time.Duration(i) * interval)
	}
	close(ch)
	return ch
}
