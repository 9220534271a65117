package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/p33ly/pfp"
	"github.com/p33ly/pfp/internal/window"
)

// runOpts holds the flags for the run command.
type runOpts struct {
	scale   float64 // window size as a multiple of the canvas
	showFPS bool
	debug   bool // log per-frame render timings
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [picture]",
		Short: "Open the interactive editor",
		Long: `Open the editor window. Drop a picture onto it (or pass one) to start.

Keys: 1-4 pick a hat, 0 removes it, F cycles frames, arrows size and turn
the frame, [ and ] change its opacity, A spins it, +/- resize the hat,
R resets the hat and S saves.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.config()
			if err != nil {
				return err
			}
			if opts.scale > 0 {
				cfg = cfg.Resolve(pfp.Flags{WindowScale: opts.scale})
			}
			format, err := cfg.Format()
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			e, err := cfg.NewSession(ctx)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d hats and %d frames",
				len(e.Assets().AdornmentKeys), len(e.Assets().OverlayKeys)))
			e.SetDebugMode(opts.debug)

			if len(args) == 1 {
				if err := loadPicture(e, args[0]); err != nil {
					return err
				}
			}

			return window.Run(ctx, e, window.Options{
				Scale:         cfg.WindowScale,
				ExportDir:     cfg.ExportDir,
				Format:        format,
				ResetDuration: cfg.ResetDuration(),
				ShowFPS:       opts.showFPS,
				Logger:        logger,
			})
		},
	}

	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "window size as a multiple of the 400x400 canvas")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show frame rate")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log render timings")
	return cmd
}

// loadPicture reads a picture file and installs it as the base image.
func loadPicture(e *pfp.Editor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read picture: %w", err)
	}
	if !e.AcceptUpload(pfp.Upload{Name: filepath.Base(path), Data: data}) {
		return fmt.Errorf("%s: not a decodable image", path)
	}
	return nil
}
