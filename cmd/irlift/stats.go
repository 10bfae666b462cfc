package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/snapshot"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] file.toml...",
	Short: "Report decode statistics per fixture module",
	Long:  `Stats decodes each fixture file and prints function, block, and instruction counts. With --cache the summary is served from the snapshot store when the input is unchanged`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

var (
	statsName   = color.New(color.FgGreen, color.Bold)
	statsCached = color.New(color.FgYellow)
)

func init() {
	statsCmd.Flags().Bool("cache", false, "use the snapshot store for unchanged inputs")
}

func runStats(cmd *cobra.Command, args []string) error {
	applyColorFlag(cmd)

	useCache, _ := cmd.Flags().GetBool("cache")
	var store *snapshot.Store
	if useCache {
		var err error
		store, err = snapshot.Open("irlift")
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
	}

	opts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		digest := snapshot.DigestBytes(content)

		var payload snapshot.Payload
		hit, err := store.Get(digest, &payload)
		if err != nil {
			return fmt.Errorf("%s: snapshot: %w", path, err)
		}
		if !hit {
			src, err := fixture.LoadFile(path)
			if err != nil {
				return err
			}
			m, err := decode.Decode(src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			payload = *snapshot.FromModule(m, digest)
			if err := store.Put(digest, &payload); err != nil {
				return fmt.Errorf("%s: snapshot: %w", path, err)
			}
		}

		statsName.Fprintf(out, "%s", payload.Name)
		fmt.Fprintf(out, " (%s)", path)
		if hit {
			statsCached.Fprint(out, " [cached]")
		}
		fmt.Fprintln(out)
		blocks, instrs := 0, 0
		for _, fs := range payload.Funcs {
			blocks += fs.Blocks
			instrs += fs.Instrs
		}
		fmt.Fprintf(out, "  functions: %d  globals: %d  blocks: %d  instructions: %d\n",
			len(payload.Funcs), payload.Globals, blocks, instrs)
		for _, fs := range payload.Funcs {
			fmt.Fprintf(out, "  %s: %s  blocks=%d instrs=%d\n",
				fs.Name, fs.Signature, fs.Blocks, fs.Instrs)
		}
	}
	return nil
}
