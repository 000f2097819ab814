package packager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/faasbench/internal/adapters/fs"
	"go.trai.ch/faasbench/internal/adapters/logger"
	"go.trai.ch/faasbench/internal/core/ports"
)

// NodeID is the unique identifier for the packager Graft node.
const NodeID graft.ID = "adapter.packager"

func init() {
	graft.Register(graft.Node[ports.Packager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.Packager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, hasher), nil
		},
	})
}
