package gcp_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/cache"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/provider/gcp"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func session(t *testing.T, env map[string]string) (provider.Session, *cache.Store) {
	t.Helper()
	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	return provider.Session{
		Cache:  store,
		Logger: log,
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}, store
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := gcp.NewConfig("us-central1",
		&gcp.Credentials{ProjectID: "bench", CredentialsFile: "/keys/sa.json"},
		&gcp.Resources{CodeBucket: "faasbench-code-0123456789abcdef"},
	)

	blob, err := domain.Normalize(cfg.Serialize())
	require.NoError(t, err)
	decoded, err := provider.DeserializeConfig(blob.(map[string]any))
	require.NoError(t, err)

	if diff := cmp.Diff(cfg.Serialize(), decoded.Serialize()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "us-central1", decoded.(*gcp.Config).GCPResources().Region())
}

func TestResolve_MissingCredentials(t *testing.T) {
	t.Parallel()
	s, _ := session(t, nil)

	_, err := gcp.Resolve(context.Background(), map[string]any{}, s)
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestResolve_Environment(t *testing.T) {
	t.Parallel()
	s, _ := session(t, map[string]string{
		gcp.ProjectEnv:     "env-project",
		gcp.CredentialsEnv: "/keys/env.json",
	})

	cfg, err := gcp.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)

	c := cfg.(*gcp.Config)
	assert.Equal(t, gcp.DefaultRegion, c.Region())
	assert.Equal(t, "env-project", c.GCPCredentials().ProjectID)
	assert.Equal(t, "projects/env-project/locations/europe-west1", c.Location())
}

func TestResolve_CacheWins(t *testing.T) {
	t.Parallel()
	s, store := session(t, map[string]string{gcp.ProjectEnv: "env-project", gcp.CredentialsEnv: "/keys/env.json"})

	cached := gcp.NewConfig("asia-east1", &gcp.Credentials{ProjectID: "cached"}, &gcp.Resources{CodeBucket: "code-1"})
	require.NoError(t, cached.UpdateCache(store))

	cfg, err := gcp.Resolve(context.Background(), map[string]any{
		"region":      "us-east4",
		"credentials": map[string]any{"project_id": "user"},
	}, s)
	require.NoError(t, err)

	c := cfg.(*gcp.Config)
	assert.Equal(t, "asia-east1", c.Region())
	assert.Equal(t, "cached", c.GCPCredentials().ProjectID)
	assert.Equal(t, "code-1", c.GCPResources().CodeBucket)
}

func TestProfile_Runtime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "python39", gcp.Profile.Runtime(domain.LanguagePython, "3.9"))
	assert.Equal(t, "nodejs18", gcp.Profile.Runtime(domain.LanguageNodeJS, "18"))
	require.ErrorIs(t, gcp.Profile.CheckLanguage(domain.LanguagePython, "3.7"), domain.ErrUnsupportedLanguage)
}
