package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingCredentials is returned when no credentials can be resolved for a provider that requires them.
	ErrMissingCredentials = zerr.New("missing credentials")

	// ErrResourceCreation is returned when the provider rejects the lazy creation of a resource.
	ErrResourceCreation = zerr.New("failed to create provider resource")

	// ErrDeployment is returned when creating, updating or attaching a trigger to a function fails.
	ErrDeployment = zerr.New("deployment failed")

	// ErrUnknownTriggerType is returned when a serialized trigger carries an unregistered type.
	ErrUnknownTriggerType = zerr.New("unknown trigger type")

	// ErrUnsupportedTrigger is returned when a provider cannot attach the requested trigger type.
	ErrUnsupportedTrigger = zerr.New("trigger type not supported by provider")

	// ErrUnknownProvider is returned when a configuration names a provider that is not registered.
	ErrUnknownProvider = zerr.New("unknown provider")

	// ErrMissingProviderName is returned when the deployment section does not name a provider.
	ErrMissingProviderName = zerr.New("deployment configuration does not name a provider")

	// ErrPackaging is returned when a code package cannot be built.
	ErrPackaging = zerr.New("failed to package code")

	// ErrMissingPackageFile is returned when a file required at the archive root is missing.
	ErrMissingPackageFile = zerr.New("required package file is missing")

	// ErrUnsupportedLanguage is returned for a language or language version the provider does not support.
	ErrUnsupportedLanguage = zerr.New("unsupported language or language version")

	// ErrPackageTooLarge is returned when an artifact exceeds the provider package size limit.
	ErrPackageTooLarge = zerr.New("code package exceeds provider size limit")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache")

	// ErrCacheCorrupt is returned when a cache file does not contain a valid JSON tree.
	ErrCacheCorrupt = zerr.New("cache file is malformed")

	// ErrCacheMarshalFailed is returned when a value cannot be represented in the cache tree.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache value")

	// ErrCacheWriteFailed is returned when a cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache")

	// ErrCachePathConflict is returned when a write would replace a mapping by a scalar or the reverse.
	ErrCachePathConflict = zerr.New("cache path conflict")

	// ErrCacheEmptyPath is returned when a cache operation is given no key.
	ErrCacheEmptyPath = zerr.New("cache path is empty")

	// ErrCacheDecodeFailed is returned when a cached subtree does not match the expected shape.
	ErrCacheDecodeFailed = zerr.New("failed to decode cached value")

	// ErrCacheCleanFailed is returned when the cache directory cannot be removed.
	ErrCacheCleanFailed = zerr.New("failed to remove cache directory")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrConfigDecodeFailed is returned when a configuration section has an unexpected shape.
	ErrConfigDecodeFailed = zerr.New("failed to decode configuration section")

	// ErrEnvFileLoadFailed is returned when the .env file next to the configuration cannot be loaded.
	ErrEnvFileLoadFailed = zerr.New("failed to load environment file")

	// ErrCommandFailed is returned when an external command cannot be started.
	ErrCommandFailed = zerr.New("failed to run command")

	// ErrExistenceCheckFailed is returned when a provider existence query fails for a reason other than absence.
	ErrExistenceCheckFailed = zerr.New("existence check failed")

	// ErrSettleTimeout is returned when a resource does not become ready within the poll bound.
	ErrSettleTimeout = zerr.New("resource did not become ready in time")

	// ErrInvocationFailed is returned when a function invocation fails.
	ErrInvocationFailed = zerr.New("function invocation failed")

	// ErrTriggerUnbound is returned when a trigger that needs a live session is invoked before being bound.
	ErrTriggerUnbound = zerr.New("trigger is not bound to a deployment session")

	// ErrFunctionHasNoTrigger is returned when invoking a function without a trigger of the requested type.
	ErrFunctionHasNoTrigger = zerr.New("function has no trigger of requested type")

	// ErrStorage is returned when an object storage operation fails.
	ErrStorage = zerr.New("storage operation failed")

	// ErrMissingBenchmark is returned when a command needs a benchmark and its source directory.
	ErrMissingBenchmark = zerr.New("benchmark name and source directory are required")

	// ErrInvalidPayload is returned when an invocation payload is not a JSON object.
	ErrInvalidPayload = zerr.New("invocation payload must be a JSON object")

	// ErrWatchFailed is returned when the source watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch source directory")
)
