package provider

import (
	"errors"
	"fmt"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source records where a resolved value came from.
type Source uint8

// Resolution sources, highest precedence first.
const (
	SourceNone Source = iota
	SourceCache
	SourceConfig
	SourceEnvironment
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceConfig:
		return "configuration"
	case SourceEnvironment:
		return "environment"
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}

// SectionQuery describes one category to resolve.
type SectionQuery struct {
	Provider domain.Provider
	// Category is domain.CategoryCredentials or domain.CategoryResources.
	Category string
	// User is the provider section of the user configuration.
	User map[string]any
	// Env returns the values taken from environment variables, if any are set.
	Env func() (map[string]any, bool)
}

// ResolveSection picks the category subtree from the cache, then the user
// configuration, then the environment. SourceNone is returned with a nil tree
// when no source provides it; the caller decides between a default and
// domain.ErrMissingCredentials.
func ResolveSection(cache ports.Cache, logger ports.Logger, q SectionQuery) (map[string]any, Source, error) {
	cached, found, err := cache.Get(domain.NewKeyPath(q.Provider, q.Category))
	if err != nil {
		return nil, SourceNone, err
	}
	if found {
		tree, ok := cached.(map[string]any)
		if !ok {
			return nil, SourceNone, zerr.With(zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, ""),
				"provider", q.Provider.String()), "category", q.Category)
		}
		logger.Info(fmt.Sprintf("using cached %s for %s", q.Category, q.Provider))
		return tree, SourceCache, nil
	}

	if raw, ok := q.User[q.Category]; ok && raw != nil {
		tree, ok := raw.(map[string]any)
		if !ok {
			return nil, SourceNone, zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigDecodeFailed, ""),
				"provider", q.Provider.String()), "category", q.Category)
		}
		logger.Info(fmt.Sprintf("no cached %s for %s found, using user configuration", q.Category, q.Provider))
		return tree, SourceConfig, nil
	}

	if q.Env != nil {
		if tree, ok := q.Env(); ok {
			logger.Info(fmt.Sprintf("using %s for %s from environment", q.Category, q.Provider))
			return tree, SourceEnvironment, nil
		}
	}
	return nil, SourceNone, nil
}

// ResolveRegion returns the cached region of the provider, then the region of
// the user configuration, then def. A configured region that differs from the
// cached one is reported, since the cached region stays in effect.
func ResolveRegion(cache ports.Cache, logger ports.Logger, p domain.Provider, user map[string]any, def string) (string, Source, error) {
	cached, found, err := cache.Get(domain.NewKeyPath(p, domain.CategoryRegion))
	if err != nil {
		return "", SourceNone, err
	}
	configured, _ := user[domain.CategoryRegion].(string)
	if region, ok := cached.(string); found && ok && region != "" {
		if configured != "" && configured != region {
			logger.Warn(fmt.Sprintf("ignoring region %s for %s, resources are cached in %s; run cache clean to switch regions",
				configured, p, region))
		}
		return region, SourceCache, nil
	}
	if configured != "" {
		return configured, SourceConfig, nil
	}
	return def, SourceDefault, nil
}

// EnvSection builds a SectionQuery.Env function mapping environment variables
// to fields. It reports a section only when every variable is set.
func EnvSection(s Session, fields map[string]string) func() (map[string]any, bool) {
	return func() (map[string]any, bool) {
		out := make(map[string]any, len(fields))
		for field, key := range fields {
			v := s.Getenv(key)
			if v == "" {
				return nil, false
			}
			out[field] = v
		}
		return out, true
	}
}

// WriteTree writes every leaf of tree to its path below root. Empty mappings
// are written as they are.
func WriteTree(cache ports.Cache, root domain.KeyPath, tree map[string]any) error {
	if len(tree) == 0 {
		return cache.Set(root, map[string]any{})
	}
	for key, value := range tree {
		path := root.Child(key)
		if sub, ok := value.(map[string]any); ok {
			if err := WriteTree(cache, path, sub); err != nil {
				return err
			}
			continue
		}
		if err := cache.Set(path, value); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes a section tree into target.
func Decode(p domain.Provider, category string, tree map[string]any, target any) error {
	if err := domain.DecodeTree(tree, target); err != nil {
		return errors.Join(domain.ErrConfigDecodeFailed, zerr.With(zerr.With(zerr.Wrap(err, "decode "+category),
			"provider", p.String()), "category", category))
	}
	return nil
}
