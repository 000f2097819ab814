// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/faasbench/internal/core/domain"

// Cache is the durable key-path store recording provisioned state.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type Cache interface {
	// Get returns the value at path and whether it exists.
	// Paths masked by an ignore flag report absent.
	Get(path domain.KeyPath) (any, bool, error)

	// Set upserts value at path. The change is on disk when Set returns.
	Set(path domain.KeyPath, value any) error

	// SetIgnoreStorage masks the resources and storage categories: reads report
	// absent and writes are dropped.
	SetIgnoreStorage(ignore bool)

	// SetIgnoreFunctions masks the functions and code_packages categories the same way.
	SetIgnoreFunctions(ignore bool)

	// Dir returns the directory backing the cache.
	Dir() string
}

// CacheOpener opens caches rooted at a directory.
type CacheOpener interface {
	// Open returns the cache stored in dir, creating the directory on first use.
	Open(dir string) (Cache, error)
}
