package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irlift/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file.toml...",
	Short: "Decode fixture modules and print them",
	Long:  `Dump decodes each fixture file in its own session and prints the owned module in textual form`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

var dumpHeader = color.New(color.FgCyan, color.Bold)

func runDump(cmd *cobra.Command, args []string) error {
	applyColorFlag(cmd)

	opts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")

	results, err := decodeFiles(cmd.Context(), args, opts, jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if len(results) > 1 {
			dumpHeader.Fprintf(out, "== %s\n", res.Path)
		}
		dumpOpts := ir.DumpOptions{Locs: opts.TrackDebugLocs}
		if err := ir.DumpModule(out, res.Module, dumpOpts); err != nil {
			return fmt.Errorf("%s: %w", res.Path, err)
		}
	}
	return nil
}
