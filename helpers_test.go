package pfp

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// colorNear reports whether two colors differ by at most tol per 8-bit channel.
func colorNear(a, b color.Color, tol int) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	d := func(x, y uint32) bool {
		diff := int(x>>8) - int(y>>8)
		return diff <= tol && diff >= -tol
	}
	return d(ar, br) && d(ag, bg) && d(ab, bb) && d(aa, ba)
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// gradientImage has distinct pixels everywhere, so any resampling shows.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x * 255 / max(w-1, 1)), uint8(y * 255 / max(h-1, 1)), 128, 255})
		}
	}
	return img
}

// halfImage is opaque c on its left half and transparent on the right, so
// its rotation is visible.
func halfImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w / 2 {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

var (
	hatColor   = color.RGBA{200, 30, 30, 255}
	frameColor = color.RGBA{20, 20, 160, 255}
	baseColor  = color.RGBA{90, 140, 60, 255}
)

// testSource serves the stock manifest from memory.
func testSource(t testing.TB) MapSource {
	t.Helper()
	hat := encodePNG(t, solidImage(64, 64, hatColor))
	frame := encodePNG(t, halfImage(100, 100, frameColor))
	src := MapSource{}
	m := DefaultManifest()
	for _, r := range m.Adornments {
		src[r.File] = hat
	}
	for _, r := range m.Overlays {
		src[r.File] = frame
	}
	return src
}

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newReadyEditor returns an editor with the stock assets loaded and a fixed
// clock.
func newReadyEditor(t testing.TB, opts ...Option) *Editor {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return testEpoch })}, opts...)
	e := NewEditor(opts...)
	if err := e.LoadAssets(context.Background(), testSource(t), DefaultManifest()); err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func cloneFrame(t testing.TB, e *Editor) []byte {
	t.Helper()
	f, ok := e.Frame()
	if !ok {
		t.Fatal("no frame rendered")
	}
	return bytes.Clone(f.Pix)
}
