package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/cifmt/pkg/adapter"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the tool whose JSON is on stdin",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sample, err := readSample(a.stdin, a.cfg.ChunkSize)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			kind, err := adapter.DetectKind(sample)
			if err != nil {
				return err
			}
			a.logger.Info("detected", "tool", kind.String(), "sample_bytes", len(sample))
			_, err = fmt.Fprintln(a.stdout, kind)
			return err
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown argument %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}
