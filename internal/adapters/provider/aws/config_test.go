package aws_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/cache"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/provider/aws"
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

func sampleConfig() *aws.Config {
	return aws.NewConfig("eu-central-1",
		&aws.Credentials{AccessKey: "AKIA", SecretKey: "secret"},
		&aws.Resources{
			LambdaRole: "arn:aws:iam::123456789012:role/faasbench-lambda-role",
			HTTPAPIs: map[string]aws.HTTPAPI{
				"fn-http-api": {ARN: "arn:aws:execute-api:eu-central-1:123456789012:abc", Endpoint: "https://abc.execute-api.eu-central-1.amazonaws.com"},
			},
			CodeBucket: "faasbench-code-0123456789abcdef",
		},
	)
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := sampleConfig()

	blob, err := domain.Normalize(cfg.Serialize())
	require.NoError(t, err)
	decoded, err := provider.DeserializeConfig(blob.(map[string]any))
	require.NoError(t, err)

	if diff := cmp.Diff(cfg.Serialize(), decoded.Serialize()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "eu-central-1", decoded.(*aws.Config).AWSResources().Region())
}

func TestConfig_CacheRoundTrip(t *testing.T) {
	t.Parallel()
	s, store := session(t, nil)
	require.NoError(t, sampleConfig().UpdateCache(store))

	cfg, err := aws.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleConfig().Serialize(), cfg.Serialize()); diff != "" {
		t.Errorf("cached configuration differs (-want +got):\n%s", diff)
	}
}

func TestConfig_IgnoreStorageKeepsCachedResources(t *testing.T) {
	t.Parallel()
	s, store := session(t, nil)
	require.NoError(t, sampleConfig().UpdateCache(store))

	store.SetIgnoreStorage(true)
	fresh, err := aws.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)
	assert.Empty(t, fresh.(*aws.Config).AWSResources().LambdaRole)
	require.NoError(t, fresh.UpdateCache(store))

	store.SetIgnoreStorage(false)
	cfg, err := aws.Resolve(context.Background(), map[string]any{}, s)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleConfig().AWSResources().Serialize(), cfg.(*aws.Config).AWSResources().Serialize()); diff != "" {
		t.Errorf("cached resources were overwritten (-want +got):\n%s", diff)
	}
}

func TestResolve_MissingCredentials(t *testing.T) {
	t.Parallel()
	s, _ := session(t, map[string]string{aws.AccessKeyEnv: "AKIA"})

	_, err := aws.Resolve(context.Background(), map[string]any{}, s)
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestResolve_UserSection(t *testing.T) {
	t.Parallel()
	s, _ := session(t, map[string]string{aws.AccessKeyEnv: "env", aws.SecretKeyEnv: "env"})

	cfg, err := aws.Resolve(context.Background(), map[string]any{
		"region":      "us-west-2",
		"credentials": map[string]any{"access_key": "user", "secret_key": "user-secret"},
	}, s)
	require.NoError(t, err)

	c := cfg.(*aws.Config)
	assert.Equal(t, "us-west-2", c.Region())
	assert.Equal(t, "user", c.AWSCredentials().AccessKey)
	assert.Empty(t, c.AWSResources().LambdaRole)
	assert.NotNil(t, c.AWSResources().HTTPAPIs)
}

func TestRuntime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "python3.9", aws.Runtime(domain.LanguagePython, "3.9"))
	assert.Equal(t, "nodejs18.x", aws.Runtime(domain.LanguageNodeJS, "18"))
	assert.Equal(t, "nodejs20.x", aws.Runtime(domain.LanguageNodeJS, "20.1"))
}
