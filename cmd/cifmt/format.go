package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dkoosis/cifmt/internal/config"
	"github.com/dkoosis/cifmt/pkg/adapter"
	"github.com/dkoosis/cifmt/pkg/ci"
)

func newFormatCmd(a *app) *cobra.Command {
	var detect bool
	cmd := &cobra.Command{
		Use:   "format [cargo-check|cargo-libtest]",
		Short: "Render tool JSON from stdin for the CI platform",
		Long: `Render the JSON messages of a tool read from stdin.

The tool is named as an argument, by CIFMT_TOOL or in the config file. With
--detect, or when no tool is configured, it is detected from the first chunk
of input.`,
		Example: `  cargo check --message-format=json | cifmt format cargo-check
  cargo test -- -Z unstable-options --format=json | cifmt format --detect`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("accepts at most one tool, received %d", len(args))
			}
			if len(args) == 0 {
				return nil
			}
			if detect {
				return usagef("a tool and --detect are mutually exclusive")
			}
			if _, err := adapter.ParseKind(args[0]); err != nil {
				return usageError{err}
			}
			a.flags.Tool, a.flags.ToolSet = args[0], true
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.format(cmd, detect)
		},
	}
	cmd.Flags().BoolVar(&detect, "detect", false, "detect the tool from the first chunk of input")
	return cmd
}

func (a *app) format(cmd *cobra.Command, detect bool) error {
	ctx := cmd.Context()
	platform, err := a.platform()
	if err != nil {
		return usageError{err}
	}

	var (
		ad     *adapter.Adapter
		sample []byte
	)
	if detect || a.cfg.Tool == "" {
		sample, err = readSample(a.stdin, a.cfg.ChunkSize)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if len(sample) == 0 {
			return nil
		}
		ad, err = adapter.Detect(sample, platform, adapter.WithLogger(a.logger))
		if err != nil {
			return err
		}
	} else {
		kind, err := adapter.ParseKind(a.cfg.Tool)
		if err != nil {
			return usageError{err}
		}
		ad = adapter.New(kind, platform, adapter.WithLogger(a.logger))
	}
	a.logger.Info("formatting", "tool", ad.Name(), "platform", platform.Name(), "detected", sample != nil)

	if err := writeAll(a.stdout, ad.Process(sample)); err != nil {
		return err
	}

	buf := make([]byte, a.cfg.ChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := a.stdin.Read(buf)
		if n > 0 {
			if err := writeAll(a.stdout, ad.Process(buf[:n])); err != nil {
				return err
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read input: %w", rerr)
		}
	}

	if p := ad.Pending(); p > 0 {
		a.logger.Warn("input ended inside a line", "tool", ad.Name(), "bytes", p)
	}
	if m := ad.Malformed(); m > 0 {
		a.logger.Info("skipped malformed lines", "tool", ad.Name(), "count", m)
	}
	return nil
}

// platform resolves the output platform and, for plain output, decides
// whether line prefixes are coloured.
func (a *app) platform() (ci.Platform, error) {
	p, err := ci.Resolve(a.cfg.Platform, a.lookup)
	if err != nil {
		return nil, err
	}
	if _, ok := p.(ci.Plain); !ok {
		return p, nil
	}
	switch a.cfg.Color {
	case config.ColorAlways:
		r := lipgloss.NewRenderer(a.stdout)
		r.SetColorProfile(termenv.ANSI256)
		return ci.Plain{Styles: ci.NewStyles(r)}, nil
	case config.ColorAuto:
		if isTTYWriter(a.stdout) {
			return ci.Plain{Styles: ci.NewStyles(lipgloss.NewRenderer(a.stdout))}, nil
		}
	}
	return p, nil
}

// readSample fills up to size bytes, stopping early only at end of input.
func readSample(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return buf[:n], err
}

// writeAll writes each rendered message, terminating it with a newline when
// it does not already end in one.
func writeAll(w io.Writer, out []string) error {
	for _, s := range out {
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		if _, err := io.WriteString(w, s); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
