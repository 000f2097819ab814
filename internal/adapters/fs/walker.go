// Package fs provides file system adapters for walking and hashing source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
)

// DefaultIgnores are skipped in every walk.
var DefaultIgnores = []string{".git", ".jj", "__pycache__", "*.pyc", ".DS_Store"}

// Walker yields the regular files below a directory in lexical order.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields file paths below root together with the first walk error.
// Entries whose base name matches one of ignores, or DefaultIgnores, are skipped
// and ignored directories are not descended into.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && Ignored(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// Ignored reports whether name matches one of patterns or DefaultIgnores.
func Ignored(name string, patterns []string) bool {
	for _, set := range [][]string{DefaultIgnores, patterns} {
		for _, pattern := range set {
			if ok, _ := doublestar.Match(pattern, name); ok {
				return true
			}
		}
	}
	return false
}
