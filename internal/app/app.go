// Package app implements the application layer for faasbench.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/faasbench/internal/adapters/cache"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/trigger"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/faasbench/internal/engine/deployer"
	"go.trai.ch/zerr"
)

// WatcherFactory creates a single-use source watcher.
type WatcherFactory func() (ports.Watcher, error)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	caches       ports.CacheOpener
	packager     ports.Packager
	runner       ports.CommandRunner
	logger       ports.Logger
	watchers     WatcherFactory
	out          io.Writer
	errOut       io.Writer
	workers      int
	json         bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	caches ports.CacheOpener,
	packager ports.Packager,
	runner ports.CommandRunner,
	log ports.Logger,
	watchers WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		caches:       caches,
		packager:     packager,
		runner:       runner,
		logger:       log,
		watchers:     watchers,
		out:          os.Stdout,
		errOut:       os.Stderr,
		workers:      trigger.DefaultWorkers,
	}
}

// WithOutput redirects reports to out and progress to errOut.
// This is primarily used for testing.
func (a *App) WithOutput(out, errOut io.Writer) *App {
	a.out = out
	a.errOut = errOut
	return a
}

// WithWorkers sets the size of the asynchronous invocation pool.
func (a *App) WithWorkers(n int) *App {
	a.workers = n
	return a
}

// SetJSON switches logs and reports to JSON.
func (a *App) SetJSON(enable bool) {
	a.json = enable
	a.logger.SetJSON(enable)
}

// Options select the configuration and local state of a session.
type Options struct {
	ConfigPath string
	CacheDir   string
	BuildDir   string
	// Region overrides the region of the configuration file.
	Region string
	// IgnoreCache masks cached functions and storage for the session.
	IgnoreCache bool
}

func (o Options) cacheDir() string {
	return cmp.Or(o.CacheDir, domain.DefaultCachePath())
}

// session is one provider connection with its cache.
type session struct {
	settings *domain.Settings
	cache    ports.Cache
	system   *deployer.System
}

// resolve loads the configuration and resolves the deployment configuration
// of the provider it names. Nothing is connected.
func (a *App) resolve(ctx context.Context, opts Options) (*domain.Settings, ports.Cache, ports.DeploymentConfig, provider.Descriptor, error) {
	settings, err := a.configLoader.Load(opts.ConfigPath, domain.Overrides{Region: opts.Region})
	if err != nil {
		return nil, nil, nil, provider.Descriptor{}, zerr.Wrap(err, "failed to load configuration")
	}

	c, err := a.caches.Open(opts.cacheDir())
	if err != nil {
		return nil, nil, nil, provider.Descriptor{}, err
	}
	c.SetIgnoreFunctions(opts.IgnoreCache)
	c.SetIgnoreStorage(opts.IgnoreCache)

	cfg, desc, err := provider.ResolveConfig(ctx, settings, a.providerSession(settings, c))
	if err != nil {
		return nil, nil, nil, provider.Descriptor{}, err
	}
	return settings, c, cfg, desc, nil
}

func (a *App) providerSession(settings *domain.Settings, c ports.Cache) provider.Session {
	return provider.Session{
		Cache:     c,
		Logger:    a.logger,
		Runner:    a.runner,
		LookupEnv: settings.LookupEnv,
	}
}

// open resolves the configuration and connects the provider.
// The caller must close the session.
func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	settings, c, cfg, desc, err := a.resolve(ctx, opts)
	if err != nil {
		return nil, err
	}

	backend, err := desc.Connect(ctx, cfg, a.providerSession(settings, c))
	if err != nil {
		return nil, err
	}

	pool := trigger.NewPool(a.workers)
	system := deployer.New(deployer.Options{
		Profile:  desc.Profile,
		Config:   cfg,
		Client:   backend.Client,
		Storage:  backend.Storage,
		Triggers: trigger.NewFactory(a.logger, pool, backend.Invoker),
		Packager: a.packager,
		Cache:    c,
		Logger:   a.logger,
		BuildDir: cmp.Or(opts.BuildDir, domain.DefaultBuildPath()),
		Close: func() error {
			pool.Close()
			return backend.Shutdown()
		},
	})
	return &session{settings: settings, cache: c, system: system}, nil
}

func (s *session) close(err *error) {
	*err = errors.Join(*err, s.system.Shutdown())
}

// CleanCache removes the cache directory.
func (a *App) CleanCache(_ context.Context, opts Options) error {
	dir := opts.cacheDir()
	a.logger.Info(fmt.Sprintf("removing cache %s...", dir))
	if err := cache.Clean(dir); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed cache %s", dir))
	return nil
}
