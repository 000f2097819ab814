// Package deployer implements the function lifecycle of one provider within a
// deployment session: create or update, trigger attach and cache write-back.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/faasbench/internal/engine/settle"
	"go.trai.ch/zerr"
)

// Options are the collaborators of a System.
type Options struct {
	Profile  domain.Profile
	Config   ports.DeploymentConfig
	Client   ports.ProviderClient
	Storage  ports.Storage
	Triggers ports.TriggerFactory
	Packager ports.Packager
	Cache    ports.Cache
	Logger   ports.Logger
	Waiter   *settle.Waiter
	// BuildDir is the root code packages are staged in.
	BuildDir string
	// Close releases the provider clients and the invocation pool.
	Close func() error
	// Now defaults to time.Now.
	Now func() time.Time
}

// System is the deployment client of one provider. Every successful mutation
// is written through the cache before the call returns.
type System struct {
	profile  domain.Profile
	config   ports.DeploymentConfig
	client   ports.ProviderClient
	reporter ports.StatusReporter
	storage  ports.Storage
	triggers ports.TriggerFactory
	packager ports.Packager
	cache    ports.Cache
	logger   ports.Logger
	waiter   *settle.Waiter
	buildDir string
	close    func() error
	now      func() time.Time
}

// New returns a System. Clients implementing ports.StatusReporter are polled
// after mutations instead of waiting the fixed settle delays.
func New(opts Options) *System {
	s := &System{
		profile:  opts.Profile,
		config:   opts.Config,
		client:   opts.Client,
		storage:  opts.Storage,
		triggers: opts.Triggers,
		packager: opts.Packager,
		cache:    opts.Cache,
		logger:   opts.Logger,
		waiter:   opts.Waiter,
		buildDir: opts.BuildDir,
		close:    opts.Close,
		now:      opts.Now,
	}
	if reporter, ok := opts.Client.(ports.StatusReporter); ok {
		s.reporter = reporter
	}
	if s.waiter == nil {
		s.waiter = settle.New(opts.Logger)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Provider returns the platform the system deploys to.
func (s *System) Provider() domain.Provider {
	return s.profile.Provider
}

// Config returns the resolved deployment configuration.
func (s *System) Config() ports.DeploymentConfig {
	return s.config
}

// Storage returns the object storage of the provider.
func (s *System) Storage() (ports.Storage, error) {
	if s.storage == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStorage, "no storage configured"), "provider", s.Provider().String())
	}
	return s.storage, nil
}

// CreateFunction deploys pkg as name. An existing function is updated in place
// and reported with UpdatedCode set.
func (s *System) CreateFunction(ctx context.Context, pkg *domain.CodePackage, name string) (*domain.Function, error) {
	if err := s.checkSize(pkg); err != nil {
		return nil, err
	}

	spec := s.deploySpec(pkg, name)
	handle, existence, err := s.client.Describe(ctx, name)
	if err != nil {
		return nil, err
	}

	fn := &domain.Function{
		Name:      name,
		Benchmark: pkg.Benchmark,
		CodeHash:  pkg.Hash,
		Config: domain.FunctionConfig{
			Runtime:    spec.Runtime,
			MemoryMB:   spec.MemoryMB,
			TimeoutSec: spec.TimeoutSec,
		},
	}

	switch existence {
	case domain.NotFound:
		s.logger.Info(fmt.Sprintf("creating function %s on %s", name, s.Provider()))
		handle, err = s.client.Create(ctx, spec)
		if err != nil {
			return nil, err
		}
		if err := s.waiter.Function(ctx, s.profile.Settle, s.profile.Settle.CreateDelay, s.reporter, handle); err != nil {
			return nil, err
		}
	default:
		s.logger.Info(fmt.Sprintf("function %s exists on %s, updating its code", name, s.Provider()))
		handle, err = s.client.Update(ctx, handle, spec)
		if err != nil {
			return nil, err
		}
		if err := s.waiter.Function(ctx, s.profile.Settle, s.profile.Settle.UpdateDelay, s.reporter, handle); err != nil {
			return nil, err
		}
		fn.UpdatedCode = true
	}
	fn.Identifier = handle.Identifier

	if err := s.writeFunction(fn); err != nil {
		return nil, err
	}
	if err := s.writePackage(pkg); err != nil {
		return nil, err
	}
	return fn, s.config.Resources().UpdateCache(s.cache)
}

// UpdateFunction replaces the code of fn with pkg.
func (s *System) UpdateFunction(ctx context.Context, fn *domain.Function, pkg *domain.CodePackage) error {
	if err := s.checkSize(pkg); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("updating code of function %s", fn.Name))
	handle, err := s.client.Update(ctx, fn.Handle(), s.deploySpec(pkg, fn.Name))
	if err != nil {
		return err
	}
	if err := s.waiter.Function(ctx, s.profile.Settle, s.profile.Settle.UpdateDelay, s.reporter, handle); err != nil {
		return err
	}

	prevHash, prevUpdated, prevIdentifier := fn.CodeHash, fn.UpdatedCode, fn.Identifier
	fn.CodeHash = pkg.Hash
	fn.UpdatedCode = true
	if handle.Identifier != "" {
		fn.Identifier = handle.Identifier
	}
	if err := s.writeFunction(fn); err != nil {
		fn.CodeHash, fn.UpdatedCode, fn.Identifier = prevHash, prevUpdated, prevIdentifier
		return err
	}
	if err := s.writePackage(pkg); err != nil {
		return err
	}
	return s.config.Resources().UpdateCache(s.cache)
}

// CreateTrigger attaches a trigger of type tt to fn, replacing any trigger of
// the same type, and writes the function.
func (s *System) CreateTrigger(ctx context.Context, fn *domain.Function, tt domain.TriggerType) (domain.Trigger, error) {
	spec, err := s.client.AttachTrigger(ctx, fn.Handle(), tt)
	if err != nil {
		return nil, err
	}
	if err := s.waiter.Delay(ctx, s.profile.Settle.TriggerDelay, tt.String()+" trigger of "+fn.Name); err != nil {
		return nil, err
	}

	t, err := s.triggers.New(spec)
	if err != nil {
		return nil, err
	}
	fn.AddTrigger(t)
	s.logger.Info(fmt.Sprintf("attached %s trigger to function %s", tt, fn.Name))

	if err := s.writeFunction(fn); err != nil {
		return nil, err
	}
	return t, s.config.Resources().UpdateCache(s.cache)
}

// CachedFunction binds the triggers of a function loaded from the cache to
// this session. No provider call is made.
func (s *System) CachedFunction(fn *domain.Function) error {
	for _, t := range fn.Triggers() {
		if err := s.triggers.Bind(t); err != nil {
			return zerr.With(err, "function", fn.Name)
		}
	}
	return nil
}

// GetFunction packages src and returns the function serving it, creating it
// when unknown and updating it when its cached code is outdated. An empty name
// selects the default name of the benchmark.
func (s *System) GetFunction(ctx context.Context, src domain.BenchmarkSource, name string) (*domain.Function, error) {
	if err := s.profile.CheckLanguage(src.Language, src.LanguageVersion); err != nil {
		return nil, errors.Join(domain.ErrPackaging, err)
	}
	if name == "" {
		name = src.DefaultFunctionName()
	}
	if s.profile.FormatName != nil {
		name = s.profile.FormatName(name)
	}

	pkg, err := s.packager.Package(ctx, domain.PackageRequest{
		Provider:    s.Provider(),
		Source:      src,
		BuildDir:    s.buildDir,
		BuildScript: s.profile.BuildScript,
	})
	if err != nil {
		return nil, err
	}

	blob, found, err := s.cache.Get(s.functionPath(name))
	if err != nil {
		return nil, err
	}
	if !found {
		pkg.Rebuilt = true
		return s.CreateFunction(ctx, pkg, name)
	}

	fn, err := domain.DecodeFunction(blob, s.triggers.Decode)
	if err != nil {
		return nil, zerr.With(err, "function", name)
	}
	if err := s.CachedFunction(fn); err != nil {
		return nil, err
	}
	if fn.CodeHash == pkg.Hash {
		s.logger.Info(fmt.Sprintf("using cached function %s", name))
		return fn, nil
	}

	pkg.Rebuilt = true
	s.logger.Info(fmt.Sprintf("cached function %s is outdated", name))
	if err := s.UpdateFunction(ctx, fn, pkg); err != nil {
		return nil, err
	}
	return fn, nil
}

// Shutdown writes the configuration back to the cache and releases the clients.
func (s *System) Shutdown() error {
	err := s.config.UpdateCache(s.cache)
	if s.close != nil {
		err = errors.Join(err, s.close())
	}
	return err
}

func (s *System) checkSize(pkg *domain.CodePackage) error {
	limit := s.profile.MaxPackageBytes
	if limit <= 0 || pkg.Size <= limit {
		return nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrPackageTooLarge, ""), "provider", s.Provider().String())
	err = zerr.With(err, "size", pkg.Size)
	return zerr.With(err, "limit", limit)
}

func (s *System) deploySpec(pkg *domain.CodePackage, name string) domain.DeploySpec {
	cfg := pkg.Config
	if cfg.MemoryMB <= 0 {
		cfg.MemoryMB = domain.DefaultMemoryMB
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = domain.DefaultTimeoutSec
	}
	runtime := pkg.Language.String() + pkg.LanguageVersion
	if s.profile.Runtime != nil {
		runtime = s.profile.Runtime(pkg.Language, pkg.LanguageVersion)
	}
	return domain.DeploySpec{
		Name:       name,
		Package:    pkg,
		Runtime:    runtime,
		Entrypoint: domain.DefaultEntrypoint,
		MemoryMB:   cfg.MemoryMB,
		TimeoutSec: cfg.TimeoutSec,
	}
}

func (s *System) functionPath(name string) domain.KeyPath {
	return domain.NewKeyPath(s.Provider(), domain.CategoryFunctions, name)
}

func (s *System) writeFunction(fn *domain.Function) error {
	return s.cache.Set(s.functionPath(fn.Name), fn.Serialize())
}

// writePackage records pkg below code_packages/<benchmark>/<language>-<version>,
// keeping the creation date of an earlier record.
func (s *System) writePackage(pkg *domain.CodePackage) error {
	path := domain.NewKeyPath(s.Provider(), domain.CategoryCodePackages,
		pkg.Benchmark, pkg.Language.String()+"-"+pkg.LanguageVersion)

	now := s.now()
	created := now
	blob, found, err := s.cache.Get(path)
	if err != nil {
		return err
	}
	if found {
		var rec domain.CodePackageRecord
		if domain.DecodeTree(blob, &rec) == nil {
			if t, err := time.Parse(time.RFC3339, rec.Date.Created); err == nil {
				created = t
			}
		}
	}
	return s.cache.Set(path, pkg.Record(created, now))
}
