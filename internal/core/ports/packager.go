package ports

import (
	"context"

	"go.trai.ch/faasbench/internal/core/domain"
)

// Packager builds deployable artifacts from benchmark source trees.
//
//go:generate mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Package stages, hashes and archives the source described by req.
	Package(ctx context.Context, req domain.PackageRequest) (*domain.CodePackage, error)
}
