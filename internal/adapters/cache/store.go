// Package cache implements the persistent key-path store recording provisioned state.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.Cache with one JSON file per provider below a directory.
// Provider files are loaded on first access and kept in memory.
type Store struct {
	mu  sync.Mutex
	dir string

	trees map[string]map[string]any

	ignoreStorage   bool
	ignoreFunctions bool
}

var _ ports.Cache = (*Store)(nil)

// Open returns the store rooted at dir, creating the directory on first use.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", dir)
	}
	return &Store{dir: dir, trees: make(map[string]map[string]any)}, nil
}

// Clean removes the cache directory and everything below it.
func Clean(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCleanFailed.Error()), "dir", dir)
	}
	return nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// SetIgnoreStorage masks the resources and storage categories. Masked
// categories read as absent and writes to them are dropped.
func (s *Store) SetIgnoreStorage(ignore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignoreStorage = ignore
}

// SetIgnoreFunctions masks the functions and code_packages categories the same way.
func (s *Store) SetIgnoreFunctions(ignore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignoreFunctions = ignore
}

// Get returns a copy of the value at path.
func (s *Store) Get(path domain.KeyPath) (any, bool, error) {
	if len(path) == 0 {
		return nil, false, domain.ErrCacheEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.masked(path.Category()) {
		return nil, false, nil
	}

	tree, err := s.load(path.Provider())
	if err != nil {
		return nil, false, err
	}

	var node any = tree
	for _, segment := range path[1:] {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false, nil
		}
		if node, ok = m[segment]; !ok {
			return nil, false, nil
		}
	}

	out, err := domain.Normalize(node)
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	return out, true, nil
}

// Set upserts value at path and flushes the provider file before returning.
// Writing an equal value leaves the file untouched. Writes to a masked
// category are dropped so an ignoring session keeps the stored history.
func (s *Store) Set(path domain.KeyPath, value any) error {
	if len(path) == 0 {
		return domain.ErrCacheEmptyPath
	}

	normalized, err := domain.Normalize(value)
	if err != nil {
		return errors.Join(domain.ErrCacheMarshalFailed, zerr.With(err, "path", path.String()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.masked(path.Category()) {
		return nil
	}

	provider := path.Provider()
	tree, err := s.load(provider)
	if err != nil {
		return err
	}

	var updated map[string]any
	changed := false
	if len(path) == 1 {
		root, ok := normalized.(map[string]any)
		if !ok {
			return conflict(path, "provider entry must be a mapping")
		}
		s.keepMasked(tree, root)
		updated, changed = root, !reflect.DeepEqual(tree, root)
	} else {
		updated, changed, err = upsert(tree, path, 1, normalized)
		if err != nil {
			return err
		}
	}
	if !changed {
		return nil
	}

	if err := s.flush(provider, updated); err != nil {
		return err
	}
	s.trees[provider] = updated
	return nil
}

func (s *Store) masked(category string) bool {
	switch category {
	case domain.CategoryFunctions, domain.CategoryCodePackages:
		return s.ignoreFunctions
	case domain.CategoryResources, domain.CategoryStorage:
		return s.ignoreStorage
	default:
		return false
	}
}

// keepMasked carries the masked categories of tree over into root, which
// replaces the whole provider entry.
func (s *Store) keepMasked(tree, root map[string]any) {
	for category := range root {
		if s.masked(category) {
			delete(root, category)
		}
	}
	for category, value := range tree {
		if s.masked(category) {
			root[category] = value
		}
	}
}

// load must be called with mu held.
func (s *Store) load(provider string) (map[string]any, error) {
	if tree, ok := s.trees[provider]; ok {
		return tree, nil
	}

	file := s.file(provider)
	//nolint:gosec // Path is built from the cache directory and a provider name
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			tree := make(map[string]any)
			s.trees[provider] = tree
			return tree, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "file", file)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Join(domain.ErrCacheCorrupt, zerr.With(err, "file", file))
	}
	if tree == nil {
		tree = make(map[string]any)
	}
	s.trees[provider] = tree
	return tree, nil
}

// flush writes tree to a temporary file next to the provider file and renames it into place.
func (s *Store) flush(provider string, tree map[string]any) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	file := s.file(provider)
	tmp, err := os.CreateTemp(s.dir, "."+provider+"-*.json")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "file", file)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "file", file)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "file", file)
	}
	if err := os.Chmod(tmpName, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "file", file)
	}
	if err := os.Rename(tmpName, file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "file", file)
	}
	return nil
}

func (s *Store) file(provider string) string {
	return filepath.Join(s.dir, domain.CacheFileName(provider))
}

// upsert returns a copy of node with value stored at path[depth:]. Only the
// mappings along the path are copied, so node itself is never modified.
func upsert(node map[string]any, path domain.KeyPath, depth int, value any) (map[string]any, bool, error) {
	key := path[depth]
	existing, exists := node[key]

	var next any
	if depth == len(path)-1 {
		if exists {
			_, wasMapping := existing.(map[string]any)
			_, isMapping := value.(map[string]any)
			if wasMapping != isMapping {
				return nil, false, conflict(path, "value kind differs from the stored one")
			}
			if reflect.DeepEqual(existing, value) {
				return node, false, nil
			}
		}
		next = value
	} else {
		child := map[string]any{}
		if exists {
			m, ok := existing.(map[string]any)
			if !ok {
				return nil, false, conflict(path, "path descends below a stored scalar")
			}
			child = m
		}
		updated, changed, err := upsert(child, path, depth+1, value)
		if err != nil || !changed {
			return node, changed, err
		}
		next = updated
	}

	out := maps.Clone(node)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out[key] = next
	return out, true, nil
}

func conflict(path domain.KeyPath, reason string) error {
	return errors.Join(domain.ErrCachePathConflict, zerr.With(zerr.New(reason), "path", path.String()))
}
