package pfp

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// ErrNoBaseImage is returned by exports attempted before a picture is loaded.
var ErrNoBaseImage = errors.New("pfp: no base image loaded")

// ErrUnsupportedFormat is returned for an unknown export format name.
var ErrUnsupportedFormat = errors.New("pfp: unsupported export format")

// ExportFormat selects the export encoding.
type ExportFormat uint8

const (
	FormatPNG  ExportFormat = iota // lossless PNG (default)
	FormatWebP                     // lossless WebP
)

// exportStem is the download name without extension.
const exportStem = "p33l_pfp"

// DefaultExportName is the file name offered for a PNG export.
const DefaultExportName = exportStem + ".png"

// ParseExportFormat maps "png" or "webp" (case-insensitive, optional leading
// dot) to a format.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return FormatPNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Ext returns the file extension including the dot.
func (f ExportFormat) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".png"
}

// String returns the format name.
func (f ExportFormat) String() string {
	return strings.TrimPrefix(f.Ext(), ".")
}

// ExportName returns the download file name for f. A non-empty label is
// appended after an underscore, with unsafe characters replaced.
func ExportName(f ExportFormat, label string) string {
	if strings.TrimSpace(label) == "" {
		return exportStem + f.Ext()
	}
	return exportStem + "_" + sanitizeLabel(label) + f.Ext()
}

// encodeImage writes img to w in format f.
func encodeImage(w io.Writer, img image.Image, f ExportFormat) error {
	switch f {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

// writeImageFile encodes img to a new file at path.
func writeImageFile(path string, img image.Image, f ExportFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeImage(file, img, f); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// exportPath joins dir and the export name, creating dir when missing.
func exportPath(dir string, f ExportFormat, label string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return filepath.Join(dir, ExportName(f, label)), nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
