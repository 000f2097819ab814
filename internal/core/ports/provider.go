package ports

import (
	"context"

	"go.trai.ch/faasbench/internal/core/domain"
)

// ProviderClient is the boundary to the provider-specific wire calls.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type ProviderClient interface {
	// Describe queries whether the named function exists.
	// An error is returned only when the query itself failed.
	Describe(ctx context.Context, name string) (domain.FunctionHandle, domain.Existence, error)

	// Create deploys a new function.
	Create(ctx context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error)

	// Update replaces the code of an existing function.
	Update(ctx context.Context, handle domain.FunctionHandle, spec domain.DeploySpec) (domain.FunctionHandle, error)

	// AttachTrigger updates the trigger in place when it exists, creates it otherwise.
	AttachTrigger(ctx context.Context, handle domain.FunctionHandle, tt domain.TriggerType) (domain.TriggerSpec, error)
}

// StatusReporter is implemented by clients whose provider exposes a readiness query.
type StatusReporter interface {
	// Ready reports whether the function accepts invocations and further updates.
	Ready(ctx context.Context, handle domain.FunctionHandle) (bool, error)
}

// LibraryInvoker invokes functions through the provider SDK.
type LibraryInvoker interface {
	InvokeLibrary(ctx context.Context, function string, payload []byte) ([]byte, error)
}
