// Package config loads the user configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/imdario/mergo"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file. JSON files are read the same way.
type Loader struct {
	Logger ports.Logger
	FS     afero.Fs
}

// NewLoader creates a new Loader reading from fsys.
func NewLoader(logger ports.Logger, fsys afero.Fs) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load reads the configuration at path, or faasbench.yaml when path is empty.
func (l *Loader) Load(path string, overrides domain.Overrides) (*domain.Settings, error) {
	if path == "" {
		path = domain.DefaultConfigFile
	}

	var file File
	if err := l.readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	name, _ := file.Deployment["name"].(string)
	if name == "" {
		return nil, zerr.With(domain.ErrMissingProviderName, "path", path)
	}

	section, err := providerSection(file.Deployment, name)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := applyOverrides(&section, overrides); err != nil {
		return nil, err
	}

	bench := domain.BenchmarkConfig{}
	if file.Benchmark != nil {
		bench = domain.BenchmarkConfig{MemoryMB: file.Benchmark.Memory, TimeoutSec: file.Benchmark.Timeout}
	}
	defaults := domain.BenchmarkConfig{MemoryMB: domain.DefaultMemoryMB, TimeoutSec: domain.DefaultTimeoutSec}
	if err := mergo.Merge(&bench, defaults); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}

	env, err := l.loadEnvFile(filepath.Join(filepath.Dir(path), domain.EnvFileName))
	if err != nil {
		return nil, err
	}

	return &domain.Settings{
		Provider:  domain.Provider(name),
		Section:   section,
		Benchmark: bench,
		Env:       env,
		Path:      path,
	}, nil
}

func (l *Loader) readAndUnmarshalYAML(path string, v any) error {
	data, err := afero.ReadFile(l.FS, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

// loadEnvFile reads KEY=VALUE pairs from path. A missing file yields no variables.
func (l *Loader) loadEnvFile(path string) (map[string]string, error) {
	f, err := l.FS.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", path)
	}
	l.Logger.Info(fmt.Sprintf("loaded %d variables from %s", len(env), path))
	return env, nil
}

// providerSection returns deployment.<name> as a JSON-shaped tree.
func providerSection(deployment map[string]any, name string) (map[string]any, error) {
	raw, ok := deployment[name]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}

	normalized, err := domain.Normalize(raw)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}
	section, ok := normalized.(map[string]any)
	if !ok {
		return nil, zerr.With(domain.ErrConfigDecodeFailed, "section", "deployment."+name)
	}
	return section, nil
}

func applyOverrides(section *map[string]any, overrides domain.Overrides) error {
	values := map[string]any{}
	if overrides.Region != "" {
		values["region"] = overrides.Region
	}
	if len(values) == 0 {
		return nil
	}
	if err := mergo.Merge(section, values, mergo.WithOverride); err != nil {
		return zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}
	return nil
}
