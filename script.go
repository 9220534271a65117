package pfp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// scriptStep is a single action in an editing script. Pointer coordinates
// are in canvas space.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Label  string  `json:"label,omitempty"`
	Path   string  `json:"path,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	Scale    *float64 `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	OffsetX  *float64 `json:"offsetX,omitempty"`
	OffsetY  *float64 `json:"offsetY,omitempty"`
	Size     *int     `json:"size,omitempty"`
	Opacity  *int     `json:"opacity,omitempty"`
	Animate  *bool    `json:"animate,omitempty"`
	Duration float32  `json:"duration,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"base": true, "adornment": true, "overlay": true, "transform": true,
	"press": true, "move": true, "release": true, "leave": true, "drag": true,
	"wait": true, "reset": true, "export": true,
}

// ScriptRunner sequences selections, injected pointer events and exports
// across Updates, for headless sessions and visual regression runs. Attach
// it with Editor.SetScript.
type ScriptRunner struct {
	// BaseDir resolves relative "base" paths. Empty means the working directory.
	BaseDir string
	// ExportDir and Format control where "export" steps write.
	ExportDir string
	Format    ExportFormat

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
	exported  []string
}

// LoadScript parses a JSON editing script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// LoadScriptFile reads and parses a script file. Relative "base" paths are
// resolved against the file's directory.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	r, err := LoadScript(data)
	if err != nil {
		return nil, err
	}
	r.BaseDir = filepath.Dir(path)
	return r, nil
}

// SetScript attaches a runner. Its next step is taken at the start of each
// Update, before injected input is processed. nil detaches.
func (e *Editor) SetScript(r *ScriptRunner) { e.script = r }

// Done reports whether every step has run, or a step failed.
func (r *ScriptRunner) Done() bool { return r.done }

// Err returns the error that stopped the script, if any.
func (r *ScriptRunner) Err() error { return r.err }

// Exported returns the paths written by export steps so far.
func (r *ScriptRunner) Exported() []string { return r.exported }

// Run attaches r to e and calls Update with dt until the script finishes or
// ctx is done. A non-positive dt steps at 60 ticks per second.
func (r *ScriptRunner) Run(ctx context.Context, e *Editor, dt float64) error {
	if dt <= 0 {
		dt = 1.0 / 60
	}
	e.SetScript(r)
	defer e.SetScript(nil)
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Update(dt)
	}
	// drain what the last step queued
	for e.PendingInput() > 0 || e.Resetting() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Update(dt)
	}
	return r.err
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(e *Editor) {
	if r.done {
		return
	}
	if e.PendingInput() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if err := r.apply(e, st); err != nil {
		r.err = fmt.Errorf("script step %d (%s): %w", r.cursor-1, st.Action, err)
		r.done = true
		logger().Error("script failed", "err", r.err)
		return
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.PendingInput() == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) apply(e *Editor, st scriptStep) error {
	switch st.Action {
	case "base":
		return r.loadBase(e, st.Path)
	case "adornment":
		return e.SelectAdornment(st.Key)
	case "overlay":
		if err := e.SelectOverlay(st.Key); err != nil {
			return err
		}
		o := e.Overlay()
		if st.Size != nil {
			o.SizePercent = *st.Size
		}
		if st.Opacity != nil {
			o.OpacityPercent = *st.Opacity
		}
		if st.Rotation != nil {
			o.RotationDegrees = *st.Rotation
		}
		if st.Animate != nil {
			o.Animating = *st.Animate
		}
		e.SetOverlay(o)
	case "transform":
		t := e.Transform()
		if st.Scale != nil {
			t.Scale = *st.Scale
		}
		if st.Rotation != nil {
			t.RotationDegrees = *st.Rotation
		}
		if st.OffsetX != nil {
			t.OffsetX = *st.OffsetX
		}
		if st.OffsetY != nil {
			t.OffsetY = *st.OffsetY
		}
		e.SetTransform(t)
	case "press":
		e.InjectPress(st.X, st.Y)
	case "move":
		e.InjectMove(st.X, st.Y)
	case "release":
		e.InjectRelease(st.X, st.Y)
	case "leave":
		e.InjectLeave(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		e.ResetAdornment(st.Duration)
	case "export":
		path, err := e.ExportFile(r.ExportDir, r.Format, st.Label)
		if err != nil {
			return err
		}
		r.exported = append(r.exported, path)
	}
	return nil
}

func (r *ScriptRunner) loadBase(e *Editor, path string) error {
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !e.AcceptUpload(Upload{Name: path, Data: data}) {
		return fmt.Errorf("%s: not a decodable image", path)
	}
	return nil
}
