package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/cache"
)

// Runner loads many files concurrently.
type Runner struct {
	Loader *cache.Loader
}

// New creates a Runner. A nil loader parses without caching.
func New(loader *cache.Loader) *Runner {
	if loader == nil {
		loader = cache.NewLoader(nil)
	}
	return &Runner{Loader: loader}
}

// Run discovers files under opts.Paths and loads them concurrently.
// Per-file failures are recorded in the outcome; Run itself fails only on
// discovery errors or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	opts = opts.withDefaults()
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := min(opts.Jobs, len(files))

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(workCh)
		for i := range files {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case workCh <- i:
			}
		}
		return nil
	})
	for range jobs {
		g.Go(func() error {
			for i := range workCh {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				outcomes[i] = r.loadOne(gctx, files[i])
				done[i] = true
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, waitErr
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		"files_cached", result.Stats.FilesCached,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, time.Since(started),
	)
	return result, nil
}

func (r *Runner) loadOne(ctx context.Context, path string) FileOutcome {
	ctx = logging.WithPage(ctx, path)
	outcome := FileOutcome{Path: path, Syntax: r.Loader.SyntaxFor(path)}
	res, err := r.Loader.Load(ctx, path)
	if err != nil {
		outcome.Error = err
		logging.FromContext(ctx).Warn("load failed", logging.FieldError, err)
		return outcome
	}
	outcome.Syntax = res.Syntax
	outcome.Page = res.Page
	outcome.Cached = res.Cached
	return outcome
}
