// Package wiring registers all Graft nodes and providers for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/faasbench/internal/adapters/cache"
	_ "go.trai.ch/faasbench/internal/adapters/config"
	_ "go.trai.ch/faasbench/internal/adapters/fs"
	_ "go.trai.ch/faasbench/internal/adapters/logger"
	_ "go.trai.ch/faasbench/internal/adapters/packager"
	_ "go.trai.ch/faasbench/internal/adapters/shell"
	_ "go.trai.ch/faasbench/internal/adapters/watcher"
	// Register providers.
	_ "go.trai.ch/faasbench/internal/adapters/provider/aws"
	_ "go.trai.ch/faasbench/internal/adapters/provider/fission"
	_ "go.trai.ch/faasbench/internal/adapters/provider/gcp"
	_ "go.trai.ch/faasbench/internal/adapters/provider/kubeless"
	// Register app nodes.
	_ "go.trai.ch/faasbench/internal/app"
)
