package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeDirHash hashes the relative paths and contents of all files below root,
	// skipping entries whose names match one of ignores.
	ComputeDirHash(root string, ignores []string) (string, error)
}
