package deployer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/cache"
	"go.trai.ch/faasbench/internal/adapters/trigger"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.trai.ch/faasbench/internal/engine/deployer"
	"go.trai.ch/faasbench/internal/engine/settle"
	"go.uber.org/mock/gomock"
)

var profile = domain.Profile{
	Provider: domain.ProviderFission,
	Languages: map[domain.Language]string{
		domain.LanguagePython: ">= 3.7",
	},
	MaxPackageBytes: 1 << 20,
	Settle: domain.SettlePolicy{
		CreateDelay:  10 * time.Second,
		UpdateDelay:  3 * time.Second,
		TriggerDelay: 2 * time.Second,
	},
	FormatName: domain.FormatKubernetesName,
	Runtime: func(lang domain.Language, version string) string {
		return lang.String() + "-" + version
	},
}

type fixture struct {
	system    *deployer.System
	client    *mocks.MockProviderClient
	packager  *mocks.MockPackager
	resources *mocks.MockResources
	config    *mocks.MockDeploymentConfig
	storage   *mocks.MockStorage
	store     *cache.Store
	slept     []time.Duration
	closed    bool
}

type options struct {
	client  ports.ProviderClient
	profile *domain.Profile
	noStore bool
}

func newFixture(t *testing.T, opt options) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		client:    mocks.NewMockProviderClient(ctrl),
		packager:  mocks.NewMockPackager(ctrl),
		resources: mocks.NewMockResources(ctrl),
		config:    mocks.NewMockDeploymentConfig(ctrl),
		storage:   mocks.NewMockStorage(ctrl),
		store:     store,
	}
	f.config.EXPECT().Resources().Return(f.resources).AnyTimes()
	f.resources.EXPECT().UpdateCache(store).Return(nil).AnyTimes()

	pool := trigger.NewPool(2)
	t.Cleanup(pool.Close)

	waiter := settle.New(log).WithSleep(func(_ context.Context, d time.Duration) error {
		f.slept = append(f.slept, d)
		return nil
	})

	p := profile
	if opt.profile != nil {
		p = *opt.profile
	}
	var client ports.ProviderClient = f.client
	if opt.client != nil {
		client = opt.client
	}
	var st ports.Storage = f.storage
	if opt.noStore {
		st = nil
	}

	f.system = deployer.New(deployer.Options{
		Profile:  p,
		Config:   f.config,
		Client:   client,
		Storage:  st,
		Triggers: trigger.NewFactory(log, pool, nil),
		Packager: f.packager,
		Cache:    store,
		Logger:   log,
		Waiter:   waiter,
		BuildDir: t.TempDir(),
		Close: func() error {
			f.closed = true
			return nil
		},
		Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	return f
}

func codePackage(hash string) *domain.CodePackage {
	return &domain.CodePackage{
		Benchmark:       "110.dynamic-html",
		Language:        domain.LanguagePython,
		LanguageVersion: "3.9",
		ArtifactPath:    "/build/python-3.9.zip",
		Hash:            hash,
		Size:            2048,
		Config:          domain.BenchmarkConfig{MemoryMB: 512, TimeoutSec: 30},
	}
}

func (f *fixture) cached(t *testing.T, path ...string) (any, bool) {
	t.Helper()
	v, found, err := f.store.Get(domain.NewKeyPath(domain.ProviderFission, path...))
	require.NoError(t, err)
	return v, found
}

func TestCreateFunction_Absent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	gomock.InOrder(
		f.client.EXPECT().Describe(gomock.Any(), "fn").Return(domain.FunctionHandle{}, domain.NotFound, nil),
		f.client.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error) {
				assert.Equal(t, "python-3.9", spec.Runtime)
				assert.Equal(t, 512, spec.MemoryMB)
				assert.Equal(t, domain.DefaultEntrypoint, spec.Entrypoint)
				return domain.FunctionHandle{Name: "fn"}, nil
			}),
	)

	fn, err := f.system.CreateFunction(context.Background(), codePackage("h1"), "fn")
	require.NoError(t, err)
	assert.False(t, fn.UpdatedCode)
	assert.Equal(t, []time.Duration{10 * time.Second}, f.slept)

	record, found := f.cached(t, domain.CategoryFunctions, "fn")
	require.True(t, found)
	assert.Equal(t, "h1", record.(map[string]any)["hash"])

	pkg, found := f.cached(t, domain.CategoryCodePackages, "110.dynamic-html", "python-3.9")
	require.True(t, found)
	assert.Equal(t, "2024-05-01T12:00:00Z", pkg.(map[string]any)["date"].(map[string]any)["created"])
}

func TestCreateFunction_ExistingIsUpdated(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	handle := domain.FunctionHandle{Name: "fn"}
	f.client.EXPECT().Describe(gomock.Any(), "fn").Return(handle, domain.Found, nil)
	f.client.EXPECT().Update(gomock.Any(), handle, gomock.Any()).Return(handle, nil).Times(1)
	f.client.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	fn, err := f.system.CreateFunction(context.Background(), codePackage("h1"), "fn")
	require.NoError(t, err)
	assert.True(t, fn.UpdatedCode)
	assert.Equal(t, []time.Duration{3 * time.Second}, f.slept)
}

func TestUpdateFunction_FailedWriteKeepsFunction(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	fn := &domain.Function{Name: "fn", CodeHash: "h1", Identifier: "fn-v1"}
	f.client.EXPECT().Update(gomock.Any(), fn.Handle(), gomock.Any()).
		Return(domain.FunctionHandle{Name: "fn", Identifier: "fn-v2"}, nil)

	// A scalar below the function path makes the write conflict.
	require.NoError(t, f.store.Set(domain.NewKeyPath(domain.ProviderFission, domain.CategoryFunctions), "broken"))

	err := f.system.UpdateFunction(context.Background(), fn, codePackage("h2"))
	require.ErrorIs(t, err, domain.ErrCachePathConflict)
	assert.Equal(t, "h1", fn.CodeHash)
	assert.Equal(t, "fn-v1", fn.Identifier)
	assert.False(t, fn.UpdatedCode)
}

func TestCreateFunction_ExistenceFailureIsPropagated(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	f.client.EXPECT().Describe(gomock.Any(), "fn").
		Return(domain.FunctionHandle{}, domain.ExistenceUnknown, domain.ErrExistenceCheckFailed)

	_, err := f.system.CreateFunction(context.Background(), codePackage("h1"), "fn")
	require.ErrorIs(t, err, domain.ErrExistenceCheckFailed)

	_, found := f.cached(t, domain.CategoryFunctions, "fn")
	assert.False(t, found)
}

func TestCreateFunction_FailedCreateWritesNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	f.client.EXPECT().Describe(gomock.Any(), "fn").Return(domain.FunctionHandle{}, domain.NotFound, nil)
	f.client.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(domain.FunctionHandle{}, errors.Join(domain.ErrDeployment, errors.New("quota exceeded")))

	_, err := f.system.CreateFunction(context.Background(), codePackage("h1"), "fn")
	require.ErrorIs(t, err, domain.ErrDeployment)

	_, found := f.cached(t, domain.CategoryFunctions, "fn")
	assert.False(t, found)
	assert.Empty(t, f.slept)
}

func TestCreateFunction_OversizedPackage(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	pkg := codePackage("h1")
	pkg.Size = 2 << 20

	_, err := f.system.CreateFunction(context.Background(), pkg, "fn")
	require.ErrorIs(t, err, domain.ErrPackageTooLarge)
}

type reportingClient struct {
	*mocks.MockProviderClient
	*mocks.MockStatusReporter
}

func TestCreateFunction_PollsStatus(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	client := reportingClient{mocks.NewMockProviderClient(ctrl), mocks.NewMockStatusReporter(ctrl)}

	polling := profile
	polling.Settle = domain.SettlePolicy{PollInterval: time.Millisecond, PollTimeout: time.Second}
	f := newFixture(t, options{client: client, profile: &polling})

	handle := domain.FunctionHandle{Name: "fn", Identifier: "arn:fn"}
	client.MockProviderClient.EXPECT().Describe(gomock.Any(), "fn").Return(domain.FunctionHandle{}, domain.NotFound, nil)
	client.MockProviderClient.EXPECT().Create(gomock.Any(), gomock.Any()).Return(handle, nil)
	gomock.InOrder(
		client.MockStatusReporter.EXPECT().Ready(gomock.Any(), handle).Return(false, nil),
		client.MockStatusReporter.EXPECT().Ready(gomock.Any(), handle).Return(true, nil),
	)

	fn, err := f.system.CreateFunction(context.Background(), codePackage("h1"), "fn")
	require.NoError(t, err)
	assert.Equal(t, "arn:fn", fn.Identifier)
	assert.Empty(t, f.slept)
}

func TestCreateTrigger_ReplacesSameType(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	fn := &domain.Function{Name: "fn", Benchmark: "b", CodeHash: "h1"}

	f.client.EXPECT().AttachTrigger(gomock.Any(), fn.Handle(), domain.TriggerHTTP).
		Return(domain.TriggerSpec{Type: domain.TriggerHTTP, URL: "http://gw/faasbench/fn"}, nil).Times(2)

	for range 2 {
		_, err := f.system.CreateTrigger(context.Background(), fn, domain.TriggerHTTP)
		require.NoError(t, err)
	}

	assert.Len(t, fn.Triggers(), 1)
	record, found := f.cached(t, domain.CategoryFunctions, "fn")
	require.True(t, found)
	assert.Len(t, record.(map[string]any)["triggers"], 1)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, f.slept)
}

func TestGetFunction_Lifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	src := domain.BenchmarkSource{
		Benchmark:       "110.dynamic-html",
		Language:        domain.LanguagePython,
		LanguageVersion: "3.9",
		Config:          domain.BenchmarkConfig{MemoryMB: 128},
	}
	name := "faasbench-110-dynamic-html-python-128"

	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Return(codePackage("h1"), nil).Times(2)
	f.packager.EXPECT().Package(gomock.Any(), gomock.Any()).Return(codePackage("h2"), nil)

	f.client.EXPECT().Describe(gomock.Any(), name).Return(domain.FunctionHandle{}, domain.NotFound, nil)
	f.client.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.FunctionHandle{Name: name}, nil)

	fn, err := f.system.GetFunction(context.Background(), src, "")
	require.NoError(t, err)
	assert.Equal(t, name, fn.Name)

	fn, err = f.system.GetFunction(context.Background(), src, "")
	require.NoError(t, err)
	assert.False(t, fn.UpdatedCode)

	f.client.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.FunctionHandle{Name: name}, nil)
	fn, err = f.system.GetFunction(context.Background(), src, "")
	require.NoError(t, err)
	assert.True(t, fn.UpdatedCode)
	assert.Equal(t, "h2", fn.CodeHash)
}

func TestGetFunction_UnsupportedLanguage(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	_, err := f.system.GetFunction(context.Background(), domain.BenchmarkSource{
		Benchmark:       "b",
		Language:        domain.LanguagePython,
		LanguageVersion: "3.6",
	}, "")
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	require.ErrorIs(t, err, domain.ErrPackaging)
}

func TestPrepareBuckets(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})

	f.storage.EXPECT().CreateOrReuseBucket(gomock.Any(), "b-0-input").Return("b-0-input-1", nil)
	f.storage.EXPECT().CreateOrReuseBucket(gomock.Any(), "b-0-output").Return("b-0-output-1", nil)

	buckets, err := f.system.PrepareBuckets(context.Background(), "b", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b-0-input-1"}, buckets.Input)

	again, err := f.system.PrepareBuckets(context.Background(), "b", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, buckets, again)
}

func TestStorage_Missing(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{noStore: true})

	_, err := f.system.PrepareBuckets(context.Background(), "b", 1, 0)
	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestShutdown(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	f.config.EXPECT().UpdateCache(f.store).Return(nil)

	require.NoError(t, f.system.Shutdown())
	assert.True(t, f.closed)
}
