package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// Provider names a FaaS platform a benchmark can be deployed to.
type Provider string

// Supported providers.
const (
	ProviderAWS      Provider = "aws"
	ProviderGCP      Provider = "gcp"
	ProviderFission  Provider = "fission"
	ProviderKubeless Provider = "kubeless"
)

func (p Provider) String() string {
	return string(p)
}

// KeyPath addresses a value in the cache tree: provider, category, then fields.
type KeyPath []string

// NewKeyPath returns the path rooted at the given provider.
func NewKeyPath(provider Provider, segments ...string) KeyPath {
	path := make(KeyPath, 0, len(segments)+1)
	path = append(path, provider.String())
	return append(path, segments...)
}

// Provider returns the first segment of the path.
func (p KeyPath) Provider() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Category returns the second segment of the path, or "" for provider-level paths.
func (p KeyPath) Category() string {
	if len(p) < 2 {
		return ""
	}
	return p[1]
}

// Child returns a copy of the path extended by segments.
func (p KeyPath) Child(segments ...string) KeyPath {
	out := slices.Clone(p)
	return append(out, segments...)
}

func (p KeyPath) String() string {
	return strings.Join(p, ".")
}

// SettlePolicy bounds the waits inserted after asynchronous provider mutations.
// Delays are used when the provider has no status query, polling otherwise.
type SettlePolicy struct {
	CreateDelay  time.Duration
	UpdateDelay  time.Duration
	TriggerDelay time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Profile describes the static capabilities of a provider.
type Profile struct {
	Provider Provider
	// Languages maps a language to a version constraint, e.g. ">= 3.8, < 3.13".
	Languages map[Language]string
	// MaxPackageBytes is the largest artifact the provider accepts, 0 for unlimited.
	MaxPackageBytes int64
	// BuildScript is written as build.sh at the archive root when non-empty.
	BuildScript string
	Settle      SettlePolicy
	// FormatName turns a free-form name into one the provider accepts.
	FormatName func(string) string
	// Runtime returns the provider runtime identifier for a language version.
	Runtime func(lang Language, version string) string
}

// CheckLanguage returns ErrUnsupportedLanguage unless the profile accepts
// the language at the given version.
func (p Profile) CheckLanguage(lang Language, v string) error {
	constraint, ok := p.Languages[lang]
	if !ok {
		return zerr.With(zerr.With(zerr.Wrap(ErrUnsupportedLanguage, ""), "provider", p.Provider.String()), "language", lang.String())
	}

	parsed, err := version.NewVersion(v)
	if err != nil {
		return zerr.With(zerr.Wrap(ErrUnsupportedLanguage, ""), "version", v)
	}
	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid version constraint"), "constraint", constraint)
	}
	if !constraints.Check(parsed) {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrUnsupportedLanguage, ""),
			"provider", p.Provider.String()), "version", lang.String()+" "+v), "supported", constraint)
	}
	return nil
}
