package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/faasbench/internal/core/ports"
)

// NodeID is the unique identifier for the cache opener Graft node.
const NodeID graft.ID = "adapter.cache_opener"

// Opener implements ports.CacheOpener.
type Opener struct{}

// Open returns the store rooted at dir.
func (Opener) Open(dir string) (ports.Cache, error) {
	store, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	graft.Register(graft.Node[ports.CacheOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheOpener, error) {
			return Opener{}, nil
		},
	})
}
