package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/faasbench/internal/adapters/storage"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/engine/deployer"
	"go.trai.ch/faasbench/internal/ui/style"
	"go.trai.ch/zerr"
)

// StorageOptions configuration for the storage methods.
type StorageOptions struct {
	Options
	Benchmark string
	Inputs    int
	Outputs   int
	// DataDir is uploaded to the first input bucket when set.
	DataDir string
}

// PrepareStorage creates or reuses the buckets of a benchmark and uploads its
// input data. Buckets already holding objects are not uploaded to again.
func (a *App) PrepareStorage(ctx context.Context, opts StorageOptions) (err error) {
	if opts.Benchmark == "" {
		return domain.ErrMissingBenchmark
	}

	s, err := a.open(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer s.close(&err)

	buckets, err := s.system.PrepareBuckets(ctx, opts.Benchmark, opts.Inputs, opts.Outputs)
	if err != nil {
		return err
	}

	if opts.DataDir != "" && len(buckets.Input) > 0 {
		if err := a.upload(ctx, s.system, buckets.Input[0], opts); err != nil {
			return err
		}
	}

	if a.json {
		a.writeJSON(map[string]any{opts.Benchmark: buckets.Serialize()})
		return nil
	}
	a.reportBuckets(opts.Benchmark, buckets)
	return nil
}

func (a *App) upload(ctx context.Context, system *deployer.System, bucket string, opts StorageOptions) error {
	st, err := system.Storage()
	if err != nil {
		return err
	}

	existing, err := st.List(ctx, bucket)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !opts.IgnoreCache {
		a.logger.Info(fmt.Sprintf("bucket %s already holds %d objects, skipping upload", bucket, len(existing)))
		return nil
	}

	keys, err := storage.UploadDirectory(ctx, st, bucket, opts.Benchmark, opts.DataDir, a.errOut)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("uploaded %d objects to %s", len(keys), bucket))
	return nil
}

// CleanStorage empties the cached buckets of every benchmark, or of
// opts.Benchmark when set. Buckets themselves are kept for reuse.
func (a *App) CleanStorage(ctx context.Context, opts StorageOptions) (err error) {
	s, err := a.open(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer s.close(&err)

	st, err := s.system.Storage()
	if err != nil {
		return err
	}

	blob, found, err := s.cache.Get(domain.NewKeyPath(s.system.Provider(), domain.CategoryStorage))
	if err != nil {
		return err
	}
	if !found {
		a.logger.Info("no cached buckets to clean")
		return nil
	}
	benchmarks, ok := blob.(map[string]any)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, ""), "category", domain.CategoryStorage)
	}

	var errs error
	for _, name := range slices.Sorted(maps.Keys(benchmarks)) {
		if opts.Benchmark != "" && name != opts.Benchmark {
			continue
		}
		var buckets deployer.Buckets
		if err := domain.DecodeTree(benchmarks[name], &buckets); err != nil {
			errs = errors.Join(errs, zerr.With(errors.Join(domain.ErrCacheDecodeFailed, err), "benchmark", name))
			continue
		}
		for _, bucket := range slices.Concat(buckets.Input, buckets.Output) {
			a.logger.Info(fmt.Sprintf("cleaning bucket %s...", bucket))
			if err := st.Clean(ctx, bucket); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}
	return errs
}

func (a *App) reportBuckets(benchmark string, buckets deployer.Buckets) {
	r := a.renderer()
	_, _ = fmt.Fprintln(a.out, style.Heading.Renderer(r).Render(benchmark))
	renderTree(a.out, r, map[string]any{
		"input":  fmt.Sprint(buckets.Input),
		"output": fmt.Sprint(buckets.Output),
	}, 1)
}
