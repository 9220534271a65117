// Package pfp is the engine of an interactive profile-picture editor: a
// user's portrait with a hat (the adornment) and a decorative frame (the
// overlay) composited on a fixed 400x400 canvas, exported as PNG.
//
// The adornment is placed by direct manipulation. Three circular control
// affordances around it grab move, resize and rotate gestures; pressing its
// body grabs a move.
//
// # Quick start
//
// The simplest way to get started is [Config.NewSession], which loads the
// asset set from disk:
//
//	e, err := pfp.DefaultConfig().NewSession(ctx)
//	if err != nil {
//		return err
//	}
//	e.AcceptUpload(pfp.Upload{Name: "me.jpg", Data: data})
//	_ = e.SelectAdornment("hat1")
//	path, err := e.ExportFile(".", pfp.FormatPNG, "")
//
// Interactive front ends feed a normalized pointer stream through
// [Editor.HandlePointer], call [Editor.Update] once per tick and
// [Editor.Render] whenever [Editor.NeedsRedraw] reports true.
//
// # Gestures
//
// A press is classified by [Classify]: control affordances win over the
// body, and nothing is hit while no adornment is selected. Each move
// recomputes the transform from the baseline captured at press time, so
// deltas never accumulate. See [GestureMachine].
//
// # Rendering
//
// [Renderer] is CPU only and deterministic: the same state renders the same
// pixels, except an animating overlay, whose rotation follows the time
// passed to [Editor.RenderAt].
//
// # Scripting
//
// [ScriptRunner] replays selections, pointer drags and exports from JSON,
// one step per Update, for headless sessions and regression runs.
package pfp
