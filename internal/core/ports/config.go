package ports

import "go.trai.ch/faasbench/internal/core/domain"

// Credentials is a provider-scoped secret bundle. It is immutable after resolution.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type Credentials interface {
	Serialize() map[string]any
	// UpdateCache writes every field to its canonical cache path.
	UpdateCache(cache Cache) error
}

// Resources holds provider-side infrastructure handles. Handles may be
// materialized lazily and must then be written back with UpdateCache.
type Resources interface {
	Serialize() map[string]any
	UpdateCache(cache Cache) error
}

// RegionalResources is implemented by resources that depend on the config region.
type RegionalResources interface {
	SetRegion(region string)
}

// DeploymentConfig aggregates region, credentials and resources of one provider.
type DeploymentConfig interface {
	Provider() domain.Provider
	Region() string
	Credentials() Credentials
	Resources() Resources
	// Serialize returns {name, region?, credentials, resources}.
	Serialize() map[string]any
	// UpdateCache writes region, credentials and resources back to the cache.
	UpdateCache(cache Cache) error
}
