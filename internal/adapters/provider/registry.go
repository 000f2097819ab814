// Package provider resolves provider configurations and connects their backends.
// Providers register themselves from their sub-packages.
package provider

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Session carries the per-run collaborators handed to resolvers and backends.
type Session struct {
	Cache  ports.Cache
	Logger ports.Logger
	Runner ports.CommandRunner
	// LookupEnv resolves environment variables, including the .env file.
	LookupEnv func(key string) (string, bool)
}

// Getenv returns the variable key, or "" when unset.
func (s Session) Getenv(key string) string {
	if s.LookupEnv == nil {
		return ""
	}
	v, _ := s.LookupEnv(key)
	return v
}

// Backend bundles the live clients of a connected provider.
type Backend struct {
	Client  ports.ProviderClient
	Storage ports.Storage
	// Invoker is nil for providers without SDK invocation.
	Invoker ports.LibraryInvoker
	// Close releases clients and temporary files. It may be nil.
	Close func() error
}

// Shutdown calls Close when set.
func (b *Backend) Shutdown() error {
	if b == nil || b.Close == nil {
		return nil
	}
	return b.Close()
}

// Descriptor registers a provider.
type Descriptor struct {
	Name    domain.Provider
	Profile domain.Profile
	// Resolve builds the configuration from the user section and the session cache.
	Resolve func(ctx context.Context, section map[string]any, s Session) (ports.DeploymentConfig, error)
	// Deserialize is the inverse of DeploymentConfig.Serialize.
	Deserialize func(blob map[string]any) (ports.DeploymentConfig, error)
	// Connect creates the backend for a resolved configuration.
	Connect func(ctx context.Context, cfg ports.DeploymentConfig, s Session) (*Backend, error)
}

var registry = struct {
	sync.RWMutex
	providers map[domain.Provider]Descriptor
}{providers: make(map[domain.Provider]Descriptor)}

// Register adds d to the registry. Registering a name twice panics.
func Register(d Descriptor) {
	registry.Lock()
	defer registry.Unlock()

	if _, ok := registry.providers[d.Name]; ok {
		panic("provider registered twice: " + d.Name.String())
	}
	registry.providers[d.Name] = d
}

// Lookup returns the descriptor registered under name.
func Lookup(name domain.Provider) (Descriptor, error) {
	registry.RLock()
	defer registry.RUnlock()

	d, ok := registry.providers[name]
	if !ok {
		return Descriptor{}, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", name.String())
	}
	return d, nil
}

// Names returns the registered providers in lexical order.
func Names() []domain.Provider {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.providers))
}

// ResolveConfig dispatches on the provider named in settings.
func ResolveConfig(ctx context.Context, settings *domain.Settings, s Session) (ports.DeploymentConfig, Descriptor, error) {
	d, err := Lookup(settings.Provider)
	if err != nil {
		return nil, Descriptor{}, err
	}
	cfg, err := d.Resolve(ctx, settings.Section, s)
	if err != nil {
		return nil, Descriptor{}, err
	}
	return cfg, d, nil
}

// DeserializeConfig rebuilds a configuration from its serialized form,
// dispatching on the "name" discriminator.
func DeserializeConfig(blob map[string]any) (ports.DeploymentConfig, error) {
	name, _ := blob["name"].(string)
	if name == "" {
		return nil, zerr.Wrap(domain.ErrMissingProviderName, "")
	}
	d, err := Lookup(domain.Provider(name))
	if err != nil {
		return nil, err
	}
	return d.Deserialize(blob)
}

// MissingCredentials reports a provider that requires credentials none of the
// sources provided.
func MissingCredentials(p domain.Provider, envVars ...string) error {
	err := zerr.With(zerr.Wrap(domain.ErrMissingCredentials, ""), "provider", p.String())
	if len(envVars) > 0 {
		err = zerr.With(err, "environment", envVars)
	}
	return err
}

// ResourceCreation wraps a provider rejection of a lazy resource creation.
func ResourceCreation(err error, resource, name string) error {
	return errors.Join(domain.ErrResourceCreation, zerr.With(zerr.With(zerr.Wrap(err, "create "+resource), "resource", resource), "name", name))
}
