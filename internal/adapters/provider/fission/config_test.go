package fission_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/cache"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/provider/fission"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func session(t *testing.T) (provider.Session, *cache.Store) {
	t.Helper()
	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	return provider.Session{Cache: store, Logger: log, LookupEnv: func(string) (string, bool) { return "", false }}, store
}

func sampleConfig() *fission.Config {
	return fission.NewConfig(
		&fission.Credentials{Context: "kind-fission"},
		&fission.Resources{
			Storage: fission.Storage{URL: "localhost:9000", URLIntern: "minio.minio:9000", AccessKey: "ak", SecretKey: "sk"},
			Ingress: fission.Ingress{Hostname: "router.local", Type: "nginx"},
		},
	)
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := sampleConfig()

	blob, err := domain.Normalize(cfg.Serialize())
	require.NoError(t, err)
	decoded, err := fission.Deserialize(blob.(map[string]any))
	require.NoError(t, err)

	if diff := cmp.Diff(cfg.Serialize(), decoded.Serialize()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateCache_KeepsInternalURL(t *testing.T) {
	t.Parallel()
	s, store := session(t)
	cfg := sampleConfig()
	require.NoError(t, cfg.UpdateCache(store))

	got, found, err := store.Get(domain.NewKeyPath(domain.ProviderFission, domain.CategoryResources, "storage", "url_intern"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "minio.minio:9000", got)

	resolved, err := fission.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg.Serialize(), resolved.Serialize()); diff != "" {
		t.Errorf("resolved configuration differs (-want +got):\n%s", diff)
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()
	s, _ := session(t)

	cfg, err := fission.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)

	c := cfg.(*fission.Config)
	assert.Empty(t, c.FissionCredentials().Context)
	assert.Equal(t, fission.DefaultIngressType, c.FissionResources().Ingress.Type)
	assert.Nil(t, c.FissionResources().PayloadStorage())
}

func TestResources_PayloadStorage(t *testing.T) {
	t.Parallel()

	res := sampleConfig().FissionResources()
	assert.Equal(t, map[string]string{
		"url":        "minio.minio:9000",
		"access_key": "ak",
		"secret_key": "sk",
	}, res.PayloadStorage())

	res.Storage.URLIntern = ""
	assert.Equal(t, "localhost:9000", res.PayloadStorage()["url"])
}
