// Package cli implements the pfp command-line interface.
//
// The run command opens the interactive editor window; render composes a
// picture headlessly from flags or a JSON script. All commands take
// --verbose (-v) for debug logging and --config for a TOML config file.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/p33ly/pfp"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information reported by the version command.
// main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	flags      pfp.Flags
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
// Before any subcommand runs, the logger is attached to the command context
// and handed to the pfp package.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pfp",
		Short:        "Compose profile pictures with hats and frames",
		Long:         `pfp places a hat and a decorative frame over a portrait on a 400x400 canvas and exports the result as p33l_pfp.png.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			pfp.SetLogger(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "TOML config file")
	pf.StringVar(&c.flags.AssetDir, "assets", "", "directory holding the hat and frame images")
	pf.StringVar(&c.flags.ExportDir, "export-dir", "", "directory exports are written to")
	pf.StringVar(&c.flags.ExportFormat, "format", "", "export format: png (default), webp")
	pf.StringVar(&c.flags.Background, "background", "", "canvas background as a hex color")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// config loads the config file, applies flag overrides and validates.
func (c *CLI) config() (pfp.Config, error) {
	cfg, err := pfp.LoadConfig(c.configPath)
	if err != nil {
		return pfp.Config{}, err
	}
	cfg = cfg.Resolve(c.flags)
	if err := cfg.Validate(); err != nil {
		return pfp.Config{}, err
	}
	return cfg, nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pfp %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		},
	}
}
