package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dkoosis/cifmt/internal/config"
	"github.com/dkoosis/cifmt/internal/logging"
	"github.com/dkoosis/cifmt/internal/version"
	"github.com/dkoosis/cifmt/pkg/ci"
)

// app carries the process streams and the state shared by subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	lookup ci.LookupFunc

	flags  config.CliFlags
	cfg    *config.Resolved
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cifmt",
		Short: "Format Rust tool JSON output for CI",
		Long: `cifmt reads the JSON messages emitted by cargo and libtest on stdin and
writes them as GitHub Actions workflow commands or as plain readable lines.`,
		Version:           version.Get().String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.CountVarP(&a.flags.Verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.StringVar(&a.flags.Platform, "platform", config.DefaultPlatform, "output platform: auto, github, plain")
	pf.StringVar(&a.flags.Color, "color", config.DefaultColor, "colour plain output: auto, always, never")
	pf.IntVar(&a.flags.ChunkSize, "chunk-size", config.DefaultChunkSize, "bytes read from stdin per chunk")

	root.AddCommand(
		newFormatCmd(a),
		newDetectCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves configuration and installs the logger before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	a.flags.VerbositySet = flags.Changed("verbose")
	a.flags.PlatformSet = flags.Changed("platform")
	a.flags.ColorSet = flags.Changed("color")
	a.flags.ChunkSizeSet = flags.Changed("chunk-size")

	cfg, err := config.Resolve(a.flags)
	if err != nil {
		return usageError{err}
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.Verbosity)
	slog.SetDefault(a.logger)

	a.logger.Debug("configuration resolved",
		"platform", cfg.Platform, "platform_source", cfg.PlatformSource,
		"tool", cfg.Tool, "tool_source", cfg.ToolSource,
		"chunk_size", cfg.ChunkSize, "color", cfg.Color,
		"config_path", cfg.ConfigPath)
	return nil
}
