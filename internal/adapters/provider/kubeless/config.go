// Package kubeless deploys functions to Kubeless through the kubeless CLI.
package kubeless

import (
	"context"

	"go.trai.ch/faasbench/internal/adapters/kube"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
)

// ContextEnv names the variable selecting the kubernetes context.
const ContextEnv = "KUBELESS_CONTEXT"

// DefaultIngressType is the gateway used when the configuration names none.
const DefaultIngressType = "nginx"

// Credentials selects the kubernetes context. An empty context is the ambient one.
type Credentials struct {
	Context string `mapstructure:"context"`
}

// Serialize implements ports.Credentials.
func (c *Credentials) Serialize() map[string]any {
	return map[string]any{"context": c.Context}
}

// UpdateCache implements ports.Credentials.
func (c *Credentials) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderKubeless, domain.CategoryCredentials), c.Serialize())
}

// Storage is the MinIO deployment functions read inputs from.
type Storage struct {
	URL       string `mapstructure:"url"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Ingress is the HTTP gateway in front of the functions.
type Ingress struct {
	Hostname string `mapstructure:"hostname"`
	Type     string `mapstructure:"type"`
}

// Resources holds the storage and ingress handles.
type Resources struct {
	Storage Storage `mapstructure:"storage"`
	Ingress Ingress `mapstructure:"ingress"`
}

// Serialize implements ports.Resources.
func (r *Resources) Serialize() map[string]any {
	return map[string]any{
		"storage": map[string]any{
			"url":        r.Storage.URL,
			"access_key": r.Storage.AccessKey,
			"secret_key": r.Storage.SecretKey,
		},
		"ingress": map[string]any{
			"hostname": r.Ingress.Hostname,
			"type":     r.Ingress.Type,
		},
	}
}

// UpdateCache implements ports.Resources.
func (r *Resources) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderKubeless, domain.CategoryResources), r.Serialize())
}

// Config is the kubeless deployment configuration. Kubeless has no region.
type Config struct {
	credentials *Credentials
	resources   *Resources
}

var _ ports.DeploymentConfig = (*Config)(nil)

// NewConfig assembles a configuration.
func NewConfig(credentials *Credentials, resources *Resources) *Config {
	if resources.Ingress.Type == "" {
		resources.Ingress.Type = DefaultIngressType
	}
	return &Config{credentials: credentials, resources: resources}
}

// Provider implements ports.DeploymentConfig.
func (c *Config) Provider() domain.Provider { return domain.ProviderKubeless }

// Region implements ports.DeploymentConfig.
func (c *Config) Region() string { return "" }

// Credentials implements ports.DeploymentConfig.
func (c *Config) Credentials() ports.Credentials { return c.credentials }

// Resources implements ports.DeploymentConfig.
func (c *Config) Resources() ports.Resources { return c.resources }

// KubelessCredentials returns the typed credentials.
func (c *Config) KubelessCredentials() *Credentials { return c.credentials }

// KubelessResources returns the typed resources.
func (c *Config) KubelessResources() *Resources { return c.resources }

// Serialize implements ports.DeploymentConfig.
func (c *Config) Serialize() map[string]any {
	return map[string]any{
		"name":        domain.ProviderKubeless.String(),
		"credentials": c.credentials.Serialize(),
		"resources":   c.resources.Serialize(),
	}
}

// UpdateCache implements ports.DeploymentConfig.
func (c *Config) UpdateCache(cache ports.Cache) error {
	if err := c.credentials.UpdateCache(cache); err != nil {
		return err
	}
	return c.resources.UpdateCache(cache)
}

// Deserialize is the inverse of Config.Serialize.
func Deserialize(blob map[string]any) (ports.DeploymentConfig, error) {
	creds := &Credentials{}
	if err := provider.Decode(domain.ProviderKubeless, domain.CategoryCredentials,
		domain.Section(blob, domain.CategoryCredentials), creds); err != nil {
		return nil, err
	}
	res := &Resources{}
	if err := provider.Decode(domain.ProviderKubeless, domain.CategoryResources,
		domain.Section(blob, domain.CategoryResources), res); err != nil {
		return nil, err
	}
	return NewConfig(creds, res), nil
}

// Resolve builds the configuration from the cache, the user section and the
// environment. Without credentials the ambient kubernetes context is used.
func Resolve(_ context.Context, section map[string]any, s provider.Session) (ports.DeploymentConfig, error) {
	tree, source, err := provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderKubeless,
		Category: domain.CategoryCredentials,
		User:     section,
		Env:      provider.EnvSection(s, map[string]string{"context": ContextEnv}),
	})
	if err != nil {
		return nil, err
	}
	creds := &Credentials{}
	if source == provider.SourceNone {
		kube.Kubeconfig{}.LogAmbient(s.Logger, domain.ProviderKubeless)
	} else if err := provider.Decode(domain.ProviderKubeless, domain.CategoryCredentials, tree, creds); err != nil {
		return nil, err
	}

	tree, source, err = provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderKubeless,
		Category: domain.CategoryResources,
		User:     section,
	})
	if err != nil {
		return nil, err
	}
	res := &Resources{}
	if source == provider.SourceNone {
		s.Logger.Info("no resources for kubeless found, initializing defaults")
	} else if err := provider.Decode(domain.ProviderKubeless, domain.CategoryResources, tree, res); err != nil {
		return nil, err
	}

	return NewConfig(creds, res), nil
}
