package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	_ "go.trai.ch/faasbench/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the interface used in Dep[T]. Every node here depends on interfaces of the
	// shared ports package, so the inferred IDs never match.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestProvidersRegistered(t *testing.T) {
	assert.Equal(t, []domain.Provider{
		domain.ProviderAWS,
		domain.ProviderFission,
		domain.ProviderGCP,
		domain.ProviderKubeless,
	}, provider.Names())
}
