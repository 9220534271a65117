package pfp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownAsset is returned when a key names no loaded adornment or overlay.
var ErrUnknownAsset = errors.New("pfp: unknown asset")

// AssetSource opens named asset files. Implementations must be safe for
// concurrent Open calls.
type AssetSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource serves assets from a directory on disk.
type DirSource struct {
	Dir string
}

// Open opens name relative to the directory.
func (d DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(d.Dir, filepath.FromSlash(name)))
}

// MapSource serves assets from memory, keyed by file name.
type MapSource map[string][]byte

// Open returns a reader over the named entry.
func (m MapSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// AssetRef names one asset: the key it is selected by and the file it is
// decoded from.
type AssetRef struct {
	Key  string `toml:"key"`
	File string `toml:"file"`
}

// AssetManifest lists the fixed sets of adornment and overlay images.
type AssetManifest struct {
	Adornments []AssetRef `toml:"adornments"`
	Overlays   []AssetRef `toml:"overlays"`
}

// DefaultManifest returns the stock set: hat1..hat4 and frame1..frame2, each
// loaded from "<key>.png".
func DefaultManifest() AssetManifest {
	var m AssetManifest
	for i := 1; i <= 4; i++ {
		key := fmt.Sprintf("hat%d", i)
		m.Adornments = append(m.Adornments, AssetRef{Key: key, File: key + ".png"})
	}
	for i := 1; i <= 2; i++ {
		key := fmt.Sprintf("frame%d", i)
		m.Overlays = append(m.Overlays, AssetRef{Key: key, File: key + ".png"})
	}
	return m
}

// Assets is a complete, decoded asset set. Key slices keep manifest order.
type Assets struct {
	AdornmentKeys []string
	OverlayKeys   []string
	adornments    map[string]image.Image
	overlays      map[string]image.Image
}

// Adornment returns the adornment image for key.
func (a *Assets) Adornment(key string) (image.Image, bool) {
	if a == nil {
		return nil, false
	}
	img, ok := a.adornments[key]
	return img, ok
}

// Overlay returns the overlay image for key.
func (a *Assets) Overlay(key string) (image.Image, bool) {
	if a == nil {
		return nil, false
	}
	img, ok := a.overlays[key]
	return img, ok
}

// FirstOverlay returns the first overlay key in manifest order, or "".
func (a *Assets) FirstOverlay() string {
	if a == nil || len(a.OverlayKeys) == 0 {
		return ""
	}
	return a.OverlayKeys[0]
}

// LoadAssets decodes every adornment and overlay named by the manifest. It
// returns either the complete set or the first error; a failure cancels the
// decodes still in flight and no partial set is ever returned.
func LoadAssets(ctx context.Context, src AssetSource, manifest AssetManifest) (*Assets, error) {
	refs := make([]AssetRef, 0, len(manifest.Adornments)+len(manifest.Overlays))
	refs = append(refs, manifest.Adornments...)
	refs = append(refs, manifest.Overlays...)
	decoded := make([]image.Image, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			img, err := loadAsset(gctx, src, ref)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a := &Assets{
		adornments: make(map[string]image.Image, len(manifest.Adornments)),
		overlays:   make(map[string]image.Image, len(manifest.Overlays)),
	}
	for i, ref := range refs {
		if i < len(manifest.Adornments) {
			a.AdornmentKeys = append(a.AdornmentKeys, ref.Key)
			a.adornments[ref.Key] = decoded[i]
		} else {
			a.OverlayKeys = append(a.OverlayKeys, ref.Key)
			a.overlays[ref.Key] = decoded[i]
		}
	}
	logger().Debug("assets loaded", "adornments", len(a.AdornmentKeys), "overlays", len(a.OverlayKeys))
	return a, nil
}

func loadAsset(ctx context.Context, src AssetSource, ref AssetRef) (image.Image, error) {
	rc, err := src.Open(ctx, ref.File)
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", ref.Key, err)
	}
	defer rc.Close()
	img, _, err := DecodeImage(rc)
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", ref.Key, err)
	}
	return img, nil
}

// imageFormat is a decoder keyed by the magic prefix it recognizes. '?'
// matches any byte.
type imageFormat struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// imageFormats is tried in order. TGA has no magic and is the fallback, so
// these decoders are called directly instead of through image.Decode: the
// tga package registers itself with an empty magic that would claim every
// input.
var imageFormats = []imageFormat{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"gif", "GIF87a", gif.Decode},
	{"gif", "GIF89a", gif.Decode},
	{"webp", "RIFF????WEBPVP8", webp.Decode},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode},
}

func matchMagic(magic string, b []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != b[i] {
			return false
		}
	}
	return true
}

// DecodeImage decodes a PNG, JPEG, GIF, WebP, BMP or TGA image and returns
// the format name.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	format, decode := "tga", tga.Decode
	for _, f := range imageFormats {
		if matchMagic(f.magic, data) {
			format, decode = f.name, f.decode
			break
		}
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %s: %w", format, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("decode image: empty %s image", format)
	}
	return img, format, nil
}
