package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/cifmt/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			switch format {
			case "text":
				_, err := fmt.Fprintf(a.stdout, "cifmt %s\n", info)
				return err
			case "json":
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			default:
				return usagef("unknown output format %q (must be: text, json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "output-format", "text", "output format: text, json")
	return cmd
}
