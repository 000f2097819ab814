// Package gcp deploys functions to Google Cloud Functions.
package gcp

import (
	"context"
	"fmt"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
)

// Environment variables read when neither the cache nor the user configuration
// holds credentials.
const (
	ProjectEnv     = "GCP_PROJECT_NAME"
	CredentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"
)

// DefaultRegion is used when the configuration names none.
const DefaultRegion = "europe-west1"

// Credentials identify the project and the service account key.
type Credentials struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Serialize implements ports.Credentials.
func (c *Credentials) Serialize() map[string]any {
	return map[string]any{
		"project_id":       c.ProjectID,
		"credentials_file": c.CredentialsFile,
	}
}

// UpdateCache implements ports.Credentials.
func (c *Credentials) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderGCP, domain.CategoryCredentials), c.Serialize())
}

// Resources holds the bucket function archives are uploaded to.
type Resources struct {
	CodeBucket string `mapstructure:"code_bucket"`

	region string
}

var _ ports.RegionalResources = (*Resources)(nil)

// SetRegion implements ports.RegionalResources.
func (r *Resources) SetRegion(region string) {
	r.region = region
}

// Region returns the region the resources live in.
func (r *Resources) Region() string {
	return r.region
}

// Serialize implements ports.Resources.
func (r *Resources) Serialize() map[string]any {
	return map[string]any{"code_bucket": r.CodeBucket}
}

// UpdateCache implements ports.Resources.
func (r *Resources) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderGCP, domain.CategoryResources), r.Serialize())
}

// Config is the Google Cloud deployment configuration.
type Config struct {
	region      string
	credentials *Credentials
	resources   *Resources
}

var _ ports.DeploymentConfig = (*Config)(nil)

// NewConfig assembles a configuration and injects the region into the resources.
func NewConfig(region string, credentials *Credentials, resources *Resources) *Config {
	if region == "" {
		region = DefaultRegion
	}
	resources.SetRegion(region)
	return &Config{region: region, credentials: credentials, resources: resources}
}

func (c *Config) Provider() domain.Provider      { return domain.ProviderGCP }
func (c *Config) Region() string                 { return c.region }
func (c *Config) Credentials() ports.Credentials { return c.credentials }
func (c *Config) Resources() ports.Resources     { return c.resources }

// GCPCredentials returns the typed credentials.
func (c *Config) GCPCredentials() *Credentials { return c.credentials }

// GCPResources returns the typed resources.
func (c *Config) GCPResources() *Resources { return c.resources }

// Location is the parent resource name of functions in the configured region.
func (c *Config) Location() string {
	return fmt.Sprintf("projects/%s/locations/%s", c.credentials.ProjectID, c.region)
}

// Serialize implements ports.DeploymentConfig.
func (c *Config) Serialize() map[string]any {
	return map[string]any{
		"name":        domain.ProviderGCP.String(),
		"region":      c.region,
		"credentials": c.credentials.Serialize(),
		"resources":   c.resources.Serialize(),
	}
}

// UpdateCache implements ports.DeploymentConfig.
func (c *Config) UpdateCache(cache ports.Cache) error {
	if err := cache.Set(domain.NewKeyPath(domain.ProviderGCP, domain.CategoryRegion), c.region); err != nil {
		return err
	}
	if err := c.credentials.UpdateCache(cache); err != nil {
		return err
	}
	return c.resources.UpdateCache(cache)
}

// Deserialize is the inverse of Config.Serialize.
func Deserialize(blob map[string]any) (ports.DeploymentConfig, error) {
	creds := &Credentials{}
	if err := provider.Decode(domain.ProviderGCP, domain.CategoryCredentials,
		domain.Section(blob, domain.CategoryCredentials), creds); err != nil {
		return nil, err
	}
	res := &Resources{}
	if err := provider.Decode(domain.ProviderGCP, domain.CategoryResources,
		domain.Section(blob, domain.CategoryResources), res); err != nil {
		return nil, err
	}
	region, _ := blob[domain.CategoryRegion].(string)
	return NewConfig(region, creds, res), nil
}

// Resolve builds the configuration from the cache, the user section and the
// environment. Credentials are mandatory.
func Resolve(_ context.Context, section map[string]any, s provider.Session) (ports.DeploymentConfig, error) {
	region, _, err := provider.ResolveRegion(s.Cache, s.Logger, domain.ProviderGCP, section, DefaultRegion)
	if err != nil {
		return nil, err
	}

	tree, source, err := provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderGCP,
		Category: domain.CategoryCredentials,
		User:     section,
		Env: provider.EnvSection(s, map[string]string{
			"project_id":       ProjectEnv,
			"credentials_file": CredentialsEnv,
		}),
	})
	if err != nil {
		return nil, err
	}
	if source == provider.SourceNone {
		return nil, provider.MissingCredentials(domain.ProviderGCP, ProjectEnv, CredentialsEnv)
	}
	creds := &Credentials{}
	if err := provider.Decode(domain.ProviderGCP, domain.CategoryCredentials, tree, creds); err != nil {
		return nil, err
	}

	tree, source, err = provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderGCP,
		Category: domain.CategoryResources,
		User:     section,
	})
	if err != nil {
		return nil, err
	}
	res := &Resources{}
	if source == provider.SourceNone {
		s.Logger.Info("no resources for gcp found, initializing defaults")
	} else if err := provider.Decode(domain.ProviderGCP, domain.CategoryResources, tree, res); err != nil {
		return nil, err
	}

	return NewConfig(region, creds, res), nil
}
