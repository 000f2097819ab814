package ports

import (
	"context"
	"io"
)

// Storage is an object storage client used to stage benchmark inputs and outputs.
//
//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type Storage interface {
	// CreateOrReuseBucket returns an existing bucket whose name contains logicalName,
	// or creates a uniquely suffixed one.
	CreateOrReuseBucket(ctx context.Context, logicalName string) (string, error)

	// Upload stores body under key in bucket.
	Upload(ctx context.Context, bucket, key string, body io.Reader) error

	// List returns the object keys in bucket.
	List(ctx context.Context, bucket string) ([]string, error)

	// Clean deletes every object in bucket.
	Clean(ctx context.Context, bucket string) error

	// ListBuckets returns the buckets whose name contains substr.
	ListBuckets(ctx context.Context, substr string) ([]string, error)
}
