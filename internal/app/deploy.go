package app

import (
	"cmp"
	"context"
	"fmt"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/engine/deployer"
	"go.trai.ch/zerr"
)

// DeployOptions configuration for the Deploy method.
type DeployOptions struct {
	Options
	Benchmark       string
	SourceDir       string
	Language        domain.Language
	LanguageVersion string
	// Name overrides the default function name of the benchmark.
	Name       string
	MemoryMB   int
	TimeoutSec int
	Trigger    domain.TriggerType
	// Watch redeploys whenever the source tree changes.
	Watch bool
}

func (o DeployOptions) source(defaults domain.BenchmarkConfig) domain.BenchmarkSource {
	return domain.BenchmarkSource{
		Benchmark:       o.Benchmark,
		Language:        o.Language,
		LanguageVersion: o.LanguageVersion,
		SourceDir:       o.SourceDir,
		Config: domain.BenchmarkConfig{
			MemoryMB:   cmp.Or(o.MemoryMB, defaults.MemoryMB, domain.DefaultMemoryMB),
			TimeoutSec: cmp.Or(o.TimeoutSec, defaults.TimeoutSec, domain.DefaultTimeoutSec),
		},
	}
}

func (o DeployOptions) triggerType() domain.TriggerType {
	return cmp.Or(o.Trigger, domain.TriggerHTTP)
}

// Deploy packages the benchmark and makes sure its function and trigger exist.
func (a *App) Deploy(ctx context.Context, opts DeployOptions) (err error) {
	if opts.Benchmark == "" || opts.SourceDir == "" {
		return domain.ErrMissingBenchmark
	}

	s, err := a.open(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer s.close(&err)

	src := opts.source(s.settings.Benchmark)
	fn, t, err := a.deploy(ctx, s.system, src, opts)
	if err != nil {
		return err
	}
	a.reportFunction(fn, t)

	if opts.Watch {
		return a.watch(ctx, s.system, src, opts)
	}
	return nil
}

// deploy returns the function of src with a trigger of the requested type.
func (a *App) deploy(
	ctx context.Context,
	system *deployer.System,
	src domain.BenchmarkSource,
	opts DeployOptions,
) (*domain.Function, domain.Trigger, error) {
	fn, err := system.GetFunction(ctx, src, opts.Name)
	if err != nil {
		return nil, nil, err
	}

	tt := opts.triggerType()
	if t, ok := fn.Trigger(tt); ok {
		return fn, t, nil
	}
	t, err := system.CreateTrigger(ctx, fn, tt)
	if err != nil {
		return nil, nil, zerr.With(err, "function", fn.Name)
	}
	return fn, t, nil
}

// watch redeploys src on every batch of changes until ctx is done.
// Failed redeployments are logged and the watch goes on.
func (a *App) watch(ctx context.Context, system *deployer.System, src domain.BenchmarkSource, opts DeployOptions) error {
	w, err := a.watchers()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, src.SourceDir); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	a.logger.Info(fmt.Sprintf("watching %s for changes", src.SourceDir))
	for paths := range w.Changes() {
		a.logger.Info(fmt.Sprintf("%d paths changed, redeploying %s", len(paths), src.Benchmark))
		fn, t, err := a.deploy(ctx, system, src, opts)
		if err != nil {
			a.logger.Error(err)
			continue
		}
		a.reportFunction(fn, t)
	}
	return nil
}
