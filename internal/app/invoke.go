package app

import (
	"context"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// InvokeOptions configuration for the Invoke method.
type InvokeOptions struct {
	DeployOptions
	Payload     map[string]any
	Repetitions int
	// Async submits every repetition to the invocation pool at once.
	Async bool
	// Concurrency bounds the synchronous invocations in flight.
	Concurrency int
}

// Invoke deploys the benchmark when needed and invokes it Repetitions times.
func (a *App) Invoke(ctx context.Context, opts InvokeOptions) (err error) {
	if opts.Benchmark == "" || opts.SourceDir == "" {
		return domain.ErrMissingBenchmark
	}

	s, err := a.open(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer s.close(&err)

	fn, t, err := a.deploy(ctx, s.system, opts.source(s.settings.Benchmark), opts.DeployOptions)
	if err != nil {
		return err
	}

	results, err := invokeAll(ctx, t, opts)
	a.reportResults(fn, results)
	return err
}

// invokeAll returns one result per repetition, in submission order.
// Failed repetitions leave a zero result.
func invokeAll(ctx context.Context, t domain.Trigger, opts InvokeOptions) ([]domain.ExecutionResult, error) {
	n := max(opts.Repetitions, 1)
	results := make([]domain.ExecutionResult, n)

	g, ctx := errgroup.WithContext(ctx)
	if !opts.Async {
		g.SetLimit(max(opts.Concurrency, 1))
	}

	for i := range n {
		if opts.Async {
			inv := t.InvokeAsync(ctx, opts.Payload)
			g.Go(func() error {
				res, err := inv.Wait(ctx)
				return collect(results, i, res, err)
			})
			continue
		}
		g.Go(func() error {
			res, err := t.Invoke(ctx, opts.Payload)
			return collect(results, i, res, err)
		})
	}
	return results, g.Wait()
}

func collect(results []domain.ExecutionResult, i int, res domain.ExecutionResult, err error) error {
	if err != nil {
		return zerr.With(err, "repetition", i)
	}
	results[i] = res
	return nil
}
