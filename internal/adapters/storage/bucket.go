// Package storage implements object storage on S3-compatible services and GCS.
package storage

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

// suffixLen is the number of uuid characters appended to new bucket names.
const suffixLen = 16

// newBucketName returns a unique bucket name derived from logicalName.
func newBucketName(logicalName string) string {
	return strings.ToLower(logicalName) + "-" + uuid.New().String()[:suffixLen]
}

// findBucket returns the first of names containing logicalName.
func findBucket(names []string, logicalName string) (string, bool) {
	for _, name := range names {
		if strings.Contains(name, logicalName) {
			return name, true
		}
	}
	return "", false
}

func storageError(err error, op, bucket string) error {
	return errors.Join(domain.ErrStorage, zerr.With(zerr.Wrap(err, op), "bucket", bucket))
}

// EndpointURL adds the http scheme to a bare host:port endpoint.
func EndpointURL(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "http://" + raw
}
