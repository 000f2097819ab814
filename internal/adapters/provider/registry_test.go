package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const testProvider domain.Provider = "registry-test"

func init() {
	provider.Register(provider.Descriptor{
		Name: testProvider,
		Resolve: func(_ context.Context, section map[string]any, _ provider.Session) (ports.DeploymentConfig, error) {
			if section["fail"] == true {
				return nil, provider.MissingCredentials(testProvider)
			}
			return nil, nil
		},
		Deserialize: func(map[string]any) (ports.DeploymentConfig, error) {
			return nil, nil
		},
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	d, err := provider.Lookup(testProvider)
	require.NoError(t, err)
	assert.Equal(t, testProvider, d.Name)
	assert.Contains(t, provider.Names(), testProvider)

	_, err = provider.Lookup("openwhisk")
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestRegister_Twice(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		provider.Register(provider.Descriptor{Name: testProvider})
	})
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	_, d, err := provider.ResolveConfig(context.Background(), &domain.Settings{Provider: testProvider}, provider.Session{})
	require.NoError(t, err)
	assert.Equal(t, testProvider, d.Name)

	_, _, err = provider.ResolveConfig(context.Background(),
		&domain.Settings{Provider: testProvider, Section: map[string]any{"fail": true}}, provider.Session{})
	require.ErrorIs(t, err, domain.ErrMissingCredentials)

	_, _, err = provider.ResolveConfig(context.Background(), &domain.Settings{Provider: "azure"}, provider.Session{})
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestDeserializeConfig_Dispatch(t *testing.T) {
	t.Parallel()

	_, err := provider.DeserializeConfig(map[string]any{"name": testProvider.String()})
	require.NoError(t, err)

	_, err = provider.DeserializeConfig(map[string]any{})
	require.ErrorIs(t, err, domain.ErrMissingProviderName)

	_, err = provider.DeserializeConfig(map[string]any{"name": "azure"})
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestBackendShutdown(t *testing.T) {
	t.Parallel()

	var nilBackend *provider.Backend
	require.NoError(t, nilBackend.Shutdown())

	closed := false
	b := &provider.Backend{
		Client: mocks.NewMockProviderClient(gomock.NewController(t)),
		Close:  func() error { closed = true; return nil },
	}
	require.NoError(t, b.Shutdown())
	assert.True(t, closed)
}
