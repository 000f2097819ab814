package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	cstorage "cloud.google.com/go/storage"
	"go.trai.ch/faasbench/internal/core/ports"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSOptions selects the project and credentials of a GCS client.
type GCSOptions struct {
	ProjectID       string
	Region          string
	CredentialsFile string
	// Endpoint overrides the API endpoint and disables authentication, for emulators.
	Endpoint string
}

// GCS is a Google Cloud Storage object store.
type GCS struct {
	client  *cstorage.Client
	project string
	region  string
	logger  ports.Logger
}

var _ ports.Storage = (*GCS)(nil)

// NewGCS builds a GCS client.
func NewGCS(ctx context.Context, opts GCSOptions, logger ports.Logger) (*GCS, error) {
	var clientOpts []option.ClientOption
	switch {
	case opts.Endpoint != "":
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint), option.WithoutAuthentication())
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := cstorage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, storageError(err, "create gcs client", "")
	}
	return &GCS{client: client, project: opts.ProjectID, region: opts.Region, logger: logger}, nil
}

// Close releases the client.
func (g *GCS) Close() error {
	return g.client.Close()
}

// CreateOrReuseBucket implements ports.Storage.
func (g *GCS) CreateOrReuseBucket(ctx context.Context, logicalName string) (string, error) {
	names, err := g.ListBuckets(ctx, logicalName)
	if err != nil {
		return "", err
	}
	if name, ok := findBucket(names, logicalName); ok {
		g.logger.Info(fmt.Sprintf("reusing bucket %s", name))
		return name, nil
	}

	name := newBucketName(logicalName)
	err = g.client.Bucket(name).Create(ctx, g.project, &cstorage.BucketAttrs{Location: g.region})
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
		return name, nil
	}
	if err != nil {
		return "", storageError(err, "create bucket", name)
	}
	g.logger.Info(fmt.Sprintf("created bucket %s", name))
	return name, nil
}

// Upload implements ports.Storage.
func (g *GCS) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	w := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return storageError(err, "upload "+key, bucket)
	}
	if err := w.Close(); err != nil {
		return storageError(err, "upload "+key, bucket)
	}
	return nil
}

// List implements ports.Storage.
func (g *GCS) List(ctx context.Context, bucket string) ([]string, error) {
	var keys []string
	it := g.client.Bucket(bucket).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return keys, nil
		}
		if err != nil {
			return nil, storageError(err, "list objects", bucket)
		}
		keys = append(keys, attrs.Name)
	}
}

// Clean implements ports.Storage.
func (g *GCS) Clean(ctx context.Context, bucket string) error {
	keys, err := g.List(ctx, bucket)
	if err != nil {
		return err
	}
	handle := g.client.Bucket(bucket)
	for _, key := range keys {
		if err := handle.Object(key).Delete(ctx); err != nil && !errors.Is(err, cstorage.ErrObjectNotExist) {
			return storageError(err, "delete "+key, bucket)
		}
	}
	g.logger.Info(fmt.Sprintf("removed %d objects from %s", len(keys), bucket))
	return nil
}

// ListBuckets implements ports.Storage.
func (g *GCS) ListBuckets(ctx context.Context, substr string) ([]string, error) {
	var names []string
	it := g.client.Buckets(ctx, g.project)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return names, nil
		}
		if err != nil {
			return nil, storageError(err, "list buckets", substr)
		}
		if substr == "" || strings.Contains(attrs.Name, substr) {
			names = append(names, attrs.Name)
		}
	}
}
