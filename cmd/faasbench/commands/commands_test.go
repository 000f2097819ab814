package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/cmd/faasbench/commands"
	"go.trai.ch/faasbench/internal/app"
	"go.trai.ch/faasbench/internal/build"
	"go.trai.ch/faasbench/internal/core/domain"
)

type mockApp struct {
	json           bool
	deployOpts     *app.DeployOptions
	invokeOpts     *app.InvokeOptions
	configOpts     *app.Options
	prepareOpts    *app.StorageOptions
	cleanOpts      *app.StorageOptions
	cleanCacheOpts *app.Options
	err            error
}

func (m *mockApp) SetJSON(enable bool) {
	m.json = enable
}

func (m *mockApp) Deploy(_ context.Context, opts app.DeployOptions) error {
	m.deployOpts = &opts
	return m.err
}

func (m *mockApp) Invoke(_ context.Context, opts app.InvokeOptions) error {
	m.invokeOpts = &opts
	return m.err
}

func (m *mockApp) ShowConfig(_ context.Context, opts app.Options) error {
	m.configOpts = &opts
	return m.err
}

func (m *mockApp) PrepareStorage(_ context.Context, opts app.StorageOptions) error {
	m.prepareOpts = &opts
	return m.err
}

func (m *mockApp) CleanStorage(_ context.Context, opts app.StorageOptions) error {
	m.cleanOpts = &opts
	return m.err
}

func (m *mockApp) CleanCache(_ context.Context, opts app.Options) error {
	m.cleanCacheOpts = &opts
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Deploy(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m,
			"--config", "bench.yaml", "--cache", "/tmp/cache", "--json",
			"deploy", "-b", "110.dynamic-html", "-s", "benchmarks/110", "--language-version", "3.8",
			"--memory", "512", "--trigger", "Library", "--region", "eu-west-1", "--ignore-cache", "--watch")
		require.NoError(t, err)
		require.NotNil(t, m.deployOpts)

		opts := *m.deployOpts
		assert.True(t, m.json)
		assert.Equal(t, "bench.yaml", opts.ConfigPath)
		assert.Equal(t, "/tmp/cache", opts.CacheDir)
		assert.Equal(t, "eu-west-1", opts.Region)
		assert.True(t, opts.IgnoreCache)
		assert.Equal(t, "110.dynamic-html", opts.Benchmark)
		assert.Equal(t, "benchmarks/110", opts.SourceDir)
		assert.Equal(t, domain.LanguagePython, opts.Language)
		assert.Equal(t, "3.8", opts.LanguageVersion)
		assert.Equal(t, 512, opts.MemoryMB)
		assert.Equal(t, domain.TriggerLibrary, opts.Trigger)
		assert.True(t, opts.Watch)
	})

	t.Run("returns error on deploy failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "deploy", "-b", "b", "-s", "src")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.False(t, m.json)
	})
}

func TestCommands_Invoke(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "invoke", "-b", "b", "-s", "src",
			"--payload", `{"size":"small"}`, "-r", "5", "--async")
		require.NoError(t, err)
		require.NotNil(t, m.invokeOpts)

		assert.Equal(t, map[string]any{"size": "small"}, m.invokeOpts.Payload)
		assert.Equal(t, 5, m.invokeOpts.Repetitions)
		assert.True(t, m.invokeOpts.Async)
		assert.Equal(t, domain.TriggerHTTP, m.invokeOpts.Trigger)
	})

	t.Run("rejects payloads that are not objects", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "invoke", "-b", "b", "-s", "src", "--payload", `[1, 2]`)
		require.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Nil(t, m.invokeOpts)
	})
}

func TestCommands_ConfigShow(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "-c", "other.yaml", "config", "show", "--region", "us-west-2")
	require.NoError(t, err)
	require.NotNil(t, m.configOpts)
	assert.Equal(t, app.Options{ConfigPath: "other.yaml", Region: "us-west-2"}, *m.configOpts)
}

func TestCommands_Storage(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "storage", "prepare", "-b", "bench", "--inputs", "2", "--outputs", "3", "-d", "data")
	require.NoError(t, err)
	require.NotNil(t, m.prepareOpts)
	assert.Equal(t, "bench", m.prepareOpts.Benchmark)
	assert.Equal(t, 2, m.prepareOpts.Inputs)
	assert.Equal(t, 3, m.prepareOpts.Outputs)
	assert.Equal(t, "data", m.prepareOpts.DataDir)

	_, err = execute(t, m, "storage", "clean")
	require.NoError(t, err)
	require.NotNil(t, m.cleanOpts)
	assert.Empty(t, m.cleanOpts.Benchmark)
}

func TestCommands_CacheClean(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "--cache", "state", "cache", "clean")
	require.NoError(t, err)
	require.NotNil(t, m.cleanCacheOpts)
	assert.Equal(t, "state", m.cleanCacheOpts.CacheDir)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
