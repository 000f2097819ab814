package ports

import (
	"context"
	"iter"
)

// Watcher reports file system changes below a directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher.
	Stop() error
	// Changes yields batches of changed paths, coalesced over a short window.
	Changes() iter.Seq[[]string]
}
