// Package aws deploys functions to AWS Lambda and exposes them through
// API Gateway HTTP APIs.
package aws

import (
	"context"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
)

// Environment variables read when neither the cache nor the user configuration
// holds credentials.
const (
	AccessKeyEnv = "AWS_ACCESS_KEY_ID"
	SecretKeyEnv = "AWS_SECRET_ACCESS_KEY"
)

// DefaultRegion is used when the configuration names none.
const DefaultRegion = "us-east-1"

// Credentials is a static access key pair.
type Credentials struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Serialize implements ports.Credentials.
func (c *Credentials) Serialize() map[string]any {
	return map[string]any{
		"access_key": c.AccessKey,
		"secret_key": c.SecretKey,
	}
}

// UpdateCache implements ports.Credentials.
func (c *Credentials) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderAWS, domain.CategoryCredentials), c.Serialize())
}

// HTTPAPI is an API Gateway HTTP API routing to a single function.
type HTTPAPI struct {
	ARN      string `mapstructure:"arn"`
	Endpoint string `mapstructure:"endpoint"`
}

// Resources holds the lazily created role, HTTP APIs and code bucket.
type Resources struct {
	LambdaRole string             `mapstructure:"lambda_role"`
	HTTPAPIs   map[string]HTTPAPI `mapstructure:"http_apis"`
	CodeBucket string             `mapstructure:"code_bucket"`

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
	apis := make(map[string]any, len(r.HTTPAPIs))
	for name, api := range r.HTTPAPIs {
		apis[name] = map[string]any{"arn": api.ARN, "endpoint": api.Endpoint}
	}
	return map[string]any{
		"lambda_role": r.LambdaRole,
		"http_apis":   apis,
		"code_bucket": r.CodeBucket,
	}
}

// UpdateCache implements ports.Resources.
func (r *Resources) UpdateCache(cache ports.Cache) error {
	return provider.WriteTree(cache, domain.NewKeyPath(domain.ProviderAWS, domain.CategoryResources), r.Serialize())
}

// Config is the AWS deployment configuration.
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
	if resources.HTTPAPIs == nil {
		resources.HTTPAPIs = map[string]HTTPAPI{}
	}
	resources.SetRegion(region)
	return &Config{region: region, credentials: credentials, resources: resources}
}

func (c *Config) Provider() domain.Provider      { return domain.ProviderAWS }
func (c *Config) Region() string                 { return c.region }
func (c *Config) Credentials() ports.Credentials { return c.credentials }
func (c *Config) Resources() ports.Resources     { return c.resources }

// AWSCredentials returns the typed credentials.
func (c *Config) AWSCredentials() *Credentials { return c.credentials }

// AWSResources returns the typed resources.
func (c *Config) AWSResources() *Resources { return c.resources }

// Serialize implements ports.DeploymentConfig.
func (c *Config) Serialize() map[string]any {
	return map[string]any{
		"name":        domain.ProviderAWS.String(),
		"region":      c.region,
		"credentials": c.credentials.Serialize(),
		"resources":   c.resources.Serialize(),
	}
}

// UpdateCache implements ports.DeploymentConfig.
func (c *Config) UpdateCache(cache ports.Cache) error {
	if err := cache.Set(domain.NewKeyPath(domain.ProviderAWS, domain.CategoryRegion), c.region); err != nil {
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
	if err := provider.Decode(domain.ProviderAWS, domain.CategoryCredentials,
		domain.Section(blob, domain.CategoryCredentials), creds); err != nil {
		return nil, err
	}
	res := &Resources{}
	if err := provider.Decode(domain.ProviderAWS, domain.CategoryResources,
		domain.Section(blob, domain.CategoryResources), res); err != nil {
		return nil, err
	}
	region, _ := blob[domain.CategoryRegion].(string)
	return NewConfig(region, creds, res), nil
}

// Resolve builds the configuration from the cache, the user section and the
// environment. Credentials are mandatory.
func Resolve(_ context.Context, section map[string]any, s provider.Session) (ports.DeploymentConfig, error) {
	region, _, err := provider.ResolveRegion(s.Cache, s.Logger, domain.ProviderAWS, section, DefaultRegion)
	if err != nil {
		return nil, err
	}

	tree, source, err := provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderAWS,
		Category: domain.CategoryCredentials,
		User:     section,
		Env: provider.EnvSection(s, map[string]string{
			"access_key": AccessKeyEnv,
			"secret_key": SecretKeyEnv,
		}),
	})
	if err != nil {
		return nil, err
	}
	if source == provider.SourceNone {
		return nil, provider.MissingCredentials(domain.ProviderAWS, AccessKeyEnv, SecretKeyEnv)
	}
	creds := &Credentials{}
	if err := provider.Decode(domain.ProviderAWS, domain.CategoryCredentials, tree, creds); err != nil {
		return nil, err
	}

	tree, source, err = provider.ResolveSection(s.Cache, s.Logger, provider.SectionQuery{
		Provider: domain.ProviderAWS,
		Category: domain.CategoryResources,
		User:     section,
	})
	if err != nil {
		return nil, err
	}
	res := &Resources{}
	if source == provider.SourceNone {
		s.Logger.Info("no resources for aws found, initializing defaults")
	} else if err := provider.Decode(domain.ProviderAWS, domain.CategoryResources, tree, res); err != nil {
		return nil, err
	}

	return NewConfig(region, creds, res), nil
}
