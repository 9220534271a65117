package pfp

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("pfp: invalid config")

// OverlayConfig holds the overlay settings a session starts with.
type OverlayConfig struct {
	Key      string  `toml:"key"` // empty selects the first overlay
	Size     int     `toml:"size"`
	Opacity  int     `toml:"opacity"`
	Rotation float64 `toml:"rotation"`
	Animate  bool    `toml:"animate"`
}

// Config is the editor configuration, read from a TOML file.
type Config struct {
	AssetDir     string        `toml:"asset_dir"`
	Assets       AssetManifest `toml:"assets"`
	ExportDir    string        `toml:"export_dir"`
	ExportFormat string        `toml:"export_format"`
	Background   string        `toml:"background"`
	OverlaySpin  float64       `toml:"overlay_spin"`  // radians per millisecond
	ResetSeconds float64       `toml:"reset_seconds"` // eased reset duration
	WindowScale  float64       `toml:"window_scale"`
	Overlay      OverlayConfig `toml:"overlay"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	o := DefaultOverlaySettings()
	return Config{
		AssetDir:     "assets",
		Assets:       DefaultManifest(),
		ExportDir:    ".",
		ExportFormat: FormatPNG.String(),
		Background:   "#f0f0f0",
		OverlaySpin:  DefaultOverlaySpin,
		ResetSeconds: DefaultResetDuration,
		WindowScale:  2,
		Overlay: OverlayConfig{
			Size:     o.SizePercent,
			Opacity:  o.OpacityPercent,
			Rotation: o.RotationDegrees,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults. Keys the file sets that Config does not know are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config %s: %w: unknown keys %s",
			path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Flags are command-line overrides. Zero values leave the config unchanged.
type Flags struct {
	AssetDir     string
	ExportDir    string
	ExportFormat string
	Background   string
	WindowScale  float64
}

// Resolve returns c with every set flag applied over it.
func (c Config) Resolve(f Flags) Config {
	if f.AssetDir != "" {
		c.AssetDir = f.AssetDir
	}
	if f.ExportDir != "" {
		c.ExportDir = f.ExportDir
	}
	if f.ExportFormat != "" {
		c.ExportFormat = f.ExportFormat
	}
	if f.Background != "" {
		c.Background = f.Background
	}
	if f.WindowScale > 0 {
		c.WindowScale = f.WindowScale
	}
	return c
}

// Validate checks every field that cannot be silently clamped.
func (c Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.WindowScale <= 0 {
		return fmt.Errorf("%w: window_scale must be positive, got %v", ErrInvalidConfig, c.WindowScale)
	}
	if c.ResetSeconds < 0 {
		return fmt.Errorf("%w: reset_seconds must not be negative, got %v", ErrInvalidConfig, c.ResetSeconds)
	}
	if len(c.Assets.Overlays) == 0 && c.Overlay.Key != "" {
		return fmt.Errorf("%w: overlay key %q with no overlays", ErrInvalidConfig, c.Overlay.Key)
	}
	seen := make(map[string]bool)
	for _, ref := range append(append([]AssetRef(nil), c.Assets.Adornments...), c.Assets.Overlays...) {
		if ref.Key == "" || ref.File == "" {
			return fmt.Errorf("%w: asset entries need key and file", ErrInvalidConfig)
		}
		if seen[ref.Key] {
			return fmt.Errorf("%w: duplicate asset key %q", ErrInvalidConfig, ref.Key)
		}
		seen[ref.Key] = true
	}
	return nil
}

// Format returns the parsed export format.
func (c Config) Format() (ExportFormat, error) {
	return ParseExportFormat(c.ExportFormat)
}

// BackgroundColor parses Background as #rgb, #rgba, #rrggbb or #rrggbbaa.
func (c Config) BackgroundColor() (color.Color, error) {
	hex := strings.TrimPrefix(c.Background, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return nil, fmt.Errorf("%w: background %q is not a hex color", ErrInvalidConfig, c.Background)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return nil, fmt.Errorf("%w: background %q is not a hex color", ErrInvalidConfig, c.Background)
		}
	}
	return gg.Hex(hex).Color(), nil
}

// OverlaySettings returns the configured starting overlay settings, clamped.
func (c Config) OverlaySettings() OverlaySettings {
	return OverlaySettings{
		SizePercent:     c.Overlay.Size,
		OpacityPercent:  c.Overlay.Opacity,
		RotationDegrees: c.Overlay.Rotation,
		Animating:       c.Overlay.Animate,
	}.Clamp()
}

// ResetDuration returns the eased reset duration in seconds.
func (c Config) ResetDuration() float32 { return float32(c.ResetSeconds) }

// EditorOptions returns the Editor options this config implies. The config
// should have passed Validate.
func (c Config) EditorOptions() []Option {
	opts := []Option{
		WithOverlaySpin(c.OverlaySpin),
		WithOverlaySettings(c.OverlaySettings()),
	}
	if bg, err := c.BackgroundColor(); err == nil {
		opts = append(opts, WithBackground(bg))
	}
	return opts
}

// NewSession creates an editor from c, loads its assets from c.AssetDir and
// selects the configured overlay.
func (c Config) NewSession(ctx context.Context) (*Editor, error) {
	e := NewEditor(c.EditorOptions()...)
	if err := e.LoadAssets(ctx, DirSource{Dir: c.AssetDir}, c.Assets); err != nil {
		return nil, err
	}
	if c.Overlay.Key != "" {
		if err := e.SelectOverlay(c.Overlay.Key); err != nil {
			return nil, err
		}
	}
	return e, nil
}
