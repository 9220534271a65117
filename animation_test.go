package pfp

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func animatingEditor(t *testing.T) *Editor {
	t.Helper()
	e := newReadyEditor(t)
	e.SetBaseImage(solidImage(8, 8, baseColor))
	e.SetOverlayAnimating(true)
	return e
}

func TestAnimateRendersEachTick(t *testing.T) {
	e := animatingEditor(t)
	var times []time.Time
	err := e.Animate(context.Background(), FrameTicks(testEpoch, 100*time.Millisecond, 3),
		func(_ *image.RGBA, at time.Time) error {
			times = append(times, at)
			return nil
		})
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("frames = %d, want 3", len(times))
	}
	if times[2].Sub(times[0]) != 200*time.Millisecond {
		t.Errorf("frame times = %v", times)
	}
}

func TestAnimateStopsWhenFlagClears(t *testing.T) {
	e := animatingEditor(t)
	frames := 0
	err := e.Animate(context.Background(), FrameTicks(testEpoch, time.Millisecond, 10),
		func(*image.RGBA, time.Time) error {
			frames++
			if frames == 2 {
				e.SetOverlayAnimating(false)
			}
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestAnimateStopsOnClose(t *testing.T) {
	e := animatingEditor(t)
	frames := 0
	_ = e.Animate(context.Background(), FrameTicks(testEpoch, time.Millisecond, 10),
		func(*image.RGBA, time.Time) error {
			frames++
			return e.Close()
		})
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
}

func TestAnimateNotAnimating(t *testing.T) {
	e := newReadyEditor(t)
	e.SetBaseImage(solidImage(8, 8, baseColor))
	called := false
	err := e.Animate(context.Background(), FrameTicks(testEpoch, time.Millisecond, 5),
		func(*image.RGBA, time.Time) error { called = true; return nil })
	if err != nil || called {
		t.Errorf("err=%v called=%v", err, called)
	}
}

func TestAnimateStopSentinel(t *testing.T) {
	e := animatingEditor(t)
	err := e.Animate(context.Background(), FrameTicks(testEpoch, time.Millisecond, 5),
		func(*image.RGBA, time.Time) error { return ErrStopAnimation })
	if err != nil {
		t.Errorf("Animate = %v, want nil", err)
	}
	boom := errors.New("boom")
	err = e.Animate(context.Background(), FrameTicks(testEpoch, time.Millisecond, 5),
		func(*image.RGBA, time.Time) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Animate = %v, want boom", err)
	}
}

func TestAnimateCanceled(t *testing.T) {
	e := animatingEditor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ticks := make(chan time.Time) // never delivers
	if err := e.Animate(ctx, ticks, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Animate = %v, want context.Canceled", err)
	}
}

func TestFrameTicks(t *testing.T) {
	n := 0
	for range FrameTicks(testEpoch, time.Second, 4) {
		n++
	}
	if n != 4 {
		t.Errorf("ticks = %d, want 4", n)
	}
	if _, ok := <-FrameTicks(testEpoch, time.Second, 0); ok {
		t.Error("zero ticks should deliver nothing")
	}
}
