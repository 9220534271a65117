package pfp

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"
)

func TestExportWithoutBase(t *testing.T) {
	e := newReadyEditor(t)
	var buf bytes.Buffer
	if err := e.Export(&buf, FormatPNG); !errors.Is(err, ErrNoBaseImage) {
		t.Errorf("Export = %v, want ErrNoBaseImage", err)
	}
	if buf.Len() != 0 {
		t.Error("export without a base wrote bytes")
	}
	dir := t.TempDir()
	if _, err := e.ExportFile(dir, FormatPNG, ""); !errors.Is(err, ErrNoBaseImage) {
		t.Errorf("ExportFile = %v, want ErrNoBaseImage", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("export without a base created %d files", len(entries))
	}
}

func TestExportPNGMatchesFrame(t *testing.T) {
	e := newReadyEditor(t)
	e.SetBaseImage(gradientImage(120, 80))
	_ = e.SelectAdornment("hat4")

	var buf bytes.Buffer
	if err := e.Export(&buf, FormatPNG); err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, CanvasSize, CanvasSize) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	frame, _ := e.Frame()
	for _, p := range []image.Point{{0, 0}, {200, 180}, {115, 95}, {399, 250}} {
		if !colorNear(img.At(p.X, p.Y), frame.At(p.X, p.Y), 0) {
			t.Errorf("pixel %v = %v, frame has %v", p, img.At(p.X, p.Y), frame.At(p.X, p.Y))
		}
	}
}

func TestExportRendersPendingChanges(t *testing.T) {
	e := newReadyEditor(t)
	_ = e.SelectOverlay("")
	e.SetBaseImage(solidImage(4, 4, baseColor))
	if err := e.Render(); err != nil {
		t.Fatal(err)
	}
	_ = e.SelectAdornment("hat1") // not rendered yet

	var buf bytes.Buffer
	if err := e.Export(&buf, FormatPNG); err != nil {
		t.Fatal(err)
	}
	img, _ := png.Decode(&buf)
	if !colorNear(img.At(200, 180), hatColor, 2) {
		t.Errorf("export missed the pending hat: %v", img.At(200, 180))
	}
}

func TestExportFileNames(t *testing.T) {
	e := newReadyEditor(t)
	e.SetBaseImage(solidImage(4, 4, baseColor))
	dir := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		format ExportFormat
		label  string
		want   string
	}{
		{FormatPNG, "", "p33l_pfp.png"},
		{FormatPNG, "party hat", "p33l_pfp_party_hat.png"},
		{FormatWebP, "", "p33l_pfp.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			path, err := e.ExportFile(dir, tt.format, tt.label)
			if err != nil {
				t.Fatalf("ExportFile: %v", err)
			}
			if filepath.Base(path) != tt.want {
				t.Errorf("name = %q, want %q", filepath.Base(path), tt.want)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			var img image.Image
			if tt.format == FormatWebP {
				img, err = webp.Decode(f)
			} else {
				img, err = png.Decode(f)
			}
			if err != nil {
				t.Fatalf("decode %s: %v", path, err)
			}
			if img.Bounds().Dx() != CanvasSize || img.Bounds().Dy() != CanvasSize {
				t.Errorf("size = %v", img.Bounds())
			}
		})
	}
}

func TestDefaultExportName(t *testing.T) {
	if DefaultExportName != "p33l_pfp.png" {
		t.Errorf("DefaultExportName = %q", DefaultExportName)
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"webp", FormatWebP, false},
		{"WebP", FormatWebP, false},
		{"jpeg", FormatPNG, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("err = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"../etc/passwd", ".._etc_passwd"},
		{"  ", "unlabeled"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
