package ports

import "go.trai.ch/faasbench/internal/core/domain"

// ConfigLoader defines the interface for loading the user configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and applies overrides to the provider section.
	Load(path string, overrides domain.Overrides) (*domain.Settings, error)
}
