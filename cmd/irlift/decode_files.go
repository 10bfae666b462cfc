package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/ir"
	"irlift/internal/trace"
)

// fileResult pairs one input path with its decoded module.
type fileResult struct {
	Path   string
	Module *ir.Module
}

// sessionOptions builds decode options from the persistent flags. Each file
// gets its own session, so tracing goes to stderr per decode.
func sessionOptions(cmd *cobra.Command) (decode.Options, error) {
	var opts decode.Options

	opts.TrackDebugLocs, _ = cmd.Root().PersistentFlags().GetBool("locs")

	levelFlag, _ := cmd.Root().PersistentFlags().GetString("trace")
	level, err := trace.ParseLevel(levelFlag)
	if err != nil {
		return opts, err
	}
	if level > trace.LevelOff {
		opts.Tracer = trace.NewStream(cmd.ErrOrStderr(), level)
	}
	return opts, nil
}

// decodeFiles loads and decodes every fixture file, fanning out across
// goroutines. Result order follows the input order; the first failure cancels
// the remaining decodes.
func decodeFiles(ctx context.Context, paths []string, opts decode.Options, jobs int) ([]fileResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src, err := fixture.LoadFile(path)
			if err != nil {
				return err
			}
			m, err := decode.Decode(src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = fileResult{Path: path, Module: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
