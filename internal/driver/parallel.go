package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// formatFilesParallel runs formatSingleFile over files with a bounded worker
// pool. The engine carries no cross-document state, so documents are
// independent; results land at their input index which keeps the output
// deterministic.
func formatFilesParallel(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	results := make([]FormatResult, len(files))

	if jobs <= 1 {
		for i, path := range files {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results[i] = formatSingleFile(path, opts)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatSingleFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
