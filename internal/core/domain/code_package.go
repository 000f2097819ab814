package domain

import (
	"fmt"
	"time"
)

// Language identifies the implementation language of a benchmark.
type Language string

// Supported languages.
const (
	LanguagePython Language = "python"
	LanguageNodeJS Language = "nodejs"
)

func (l Language) String() string {
	return string(l)
}

// BenchmarkConfig holds the per-benchmark function settings.
type BenchmarkConfig struct {
	MemoryMB   int `mapstructure:"memory" yaml:"memory"`
	TimeoutSec int `mapstructure:"timeout" yaml:"timeout"`
}

// Default benchmark settings.
const (
	DefaultMemoryMB   = 256
	DefaultTimeoutSec = 60
)

// BenchmarkSource describes a benchmark source tree to deploy.
type BenchmarkSource struct {
	Benchmark       string
	Language        Language
	LanguageVersion string
	SourceDir       string
	Config          BenchmarkConfig
}

// DefaultFunctionName returns the unformatted default function name
// "<benchmark>-<language>-<memory>".
func (s BenchmarkSource) DefaultFunctionName() string {
	return fmt.Sprintf("%s-%s-%d", s.Benchmark, s.Language, s.Config.MemoryMB)
}

// PackageRequest asks the packager to build an artifact for a provider.
type PackageRequest struct {
	Provider    Provider
	Source      BenchmarkSource
	BuildDir    string
	BuildScript string
}

// CodePackage is the deployable artifact built from a benchmark source tree.
type CodePackage struct {
	Benchmark       string
	Language        Language
	LanguageVersion string
	SourceDir       string
	StagingDir      string
	ArtifactPath    string
	Hash            string
	Size            int64
	Config          BenchmarkConfig
	// Rebuilt reports that the hash differs from the previously cached build.
	Rebuilt bool
}

// SizeMB returns the artifact size in megabytes.
func (p *CodePackage) SizeMB() float64 {
	return float64(p.Size) / 1024.0 / 1024.0
}

// Record returns the cache representation of the package.
func (p *CodePackage) Record(created, modified time.Time) map[string]any {
	return map[string]any{
		"hash":             p.Hash,
		"location":         p.ArtifactPath,
		"size":             p.Size,
		"language_version": p.LanguageVersion,
		"date": map[string]any{
			"created":  created.UTC().Format(time.RFC3339),
			"modified": modified.UTC().Format(time.RFC3339),
		},
	}
}

// CodePackageRecord is the decoded cache record of a code package.
type CodePackageRecord struct {
	Hash            string `mapstructure:"hash"`
	Location        string `mapstructure:"location"`
	Size            int64  `mapstructure:"size"`
	LanguageVersion string `mapstructure:"language_version"`
	Date            struct {
		Created  string `mapstructure:"created"`
		Modified string `mapstructure:"modified"`
	} `mapstructure:"date"`
}

// DeploySpec is the input of a provider create or update call.
type DeploySpec struct {
	Name       string
	Package    *CodePackage
	Runtime    string
	Entrypoint string
	MemoryMB   int
	TimeoutSec int
}

// DefaultEntrypoint is the handler every benchmark archive exposes.
const DefaultEntrypoint = "handler.handler"
