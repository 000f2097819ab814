package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/faasbench/internal/adapters/cache"    //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/adapters/packager" //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/faasbench/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cache.NodeID,
			packager.NodeID,
			shell.NodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[ports.CacheOpener](ctx)
	if err != nil {
		return nil, err
	}

	pkg, err := graft.Dep[ports.Packager](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, caches, pkg, runner, log, WatcherFactory(watchers)), nil
}
