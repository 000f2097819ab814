package domain

import "path/filepath"

const (
	// StateDirName is the name of the directory holding local state.
	StateDirName = ".faasbench"

	// CacheDirName is the name of the persistent cache directory.
	CacheDirName = "cache"

	// BuildDirName is the name of the directory code packages are staged in.
	BuildDirName = "build"

	// DefaultConfigFile is the configuration file used when none is given.
	DefaultConfigFile = "faasbench.yaml"

	// EnvFileName is the dotenv file loaded next to the configuration file.
	EnvFileName = ".env"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// ExecPerm is the permission of generated build scripts (rwxr-xr-x).
	ExecPerm = 0o755
)

// Top-level cache categories below a provider.
const (
	CategoryCredentials  = "credentials"
	CategoryResources    = "resources"
	CategoryRegion       = "region"
	CategoryFunctions    = "functions"
	CategoryCodePackages = "code_packages"
	CategoryStorage      = "storage"
)

// DefaultCachePath returns the default path for the persistent cache.
// It joins .faasbench and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}

// DefaultBuildPath returns the default path code packages are staged in.
// It joins .faasbench and build.
func DefaultBuildPath() string {
	return filepath.Join(StateDirName, BuildDirName)
}

// CacheFileName returns the file name holding the cache subtree of a provider.
func CacheFileName(provider string) string {
	return provider + ".json"
}
