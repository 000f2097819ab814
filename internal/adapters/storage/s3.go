package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alitto/pond"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.trai.ch/faasbench/internal/core/ports"
)

// defaultRegion is the region that must not be sent as a location constraint.
const defaultRegion = "us-east-1"

// cleanWorkers bounds the parallel deletions of Clean.
const cleanWorkers = 16

// S3API is the subset of the S3 client the adapter calls.
type S3API interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options selects the S3-compatible endpoint and credentials.
type S3Options struct {
	Region string
	// Endpoint is set for MinIO deployments; path-style addressing is used then.
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3 is an S3-compatible object store.
type S3 struct {
	client   S3API
	uploader *manager.Uploader
	region   string
	logger   ports.Logger
}

var _ ports.Storage = (*S3)(nil)

// NewS3 builds an S3 client. Static keys are used when given, the default AWS
// credential chain otherwise.
func NewS3(ctx context.Context, opts S3Options, logger ports.Logger) (*S3, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, storageError(err, "load aws configuration", "")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3WithClient(client, opts.Region, logger), nil
}

// NewS3WithClient wraps an existing client.
func NewS3WithClient(client S3API, region string, logger ports.Logger) *S3 {
	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		region:   region,
		logger:   logger,
	}
}

// CreateOrReuseBucket implements ports.Storage.
func (s *S3) CreateOrReuseBucket(ctx context.Context, logicalName string) (string, error) {
	names, err := s.ListBuckets(ctx, logicalName)
	if err != nil {
		return "", err
	}
	if name, ok := findBucket(names, logicalName); ok {
		s.logger.Info(fmt.Sprintf("reusing bucket %s", name))
		return name, nil
	}

	name := newBucketName(logicalName)
	in := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if s.region != "" && s.region != defaultRegion {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	_, err = s.client.CreateBucket(ctx, in)
	var owned *s3types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return name, nil
	}
	if err != nil {
		return "", storageError(err, "create bucket", name)
	}
	s.logger.Info(fmt.Sprintf("created bucket %s", name))
	return name, nil
}

// Upload implements ports.Storage.
func (s *S3) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return storageError(err, "upload "+key, bucket)
	}
	return nil
}

// List implements ports.Storage.
func (s *S3) List(ctx context.Context, bucket string) ([]string, error) {
	var keys []string
	pages := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, storageError(err, "list objects", bucket)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// Clean implements ports.Storage.
func (s *S3) Clean(ctx context.Context, bucket string) error {
	keys, err := s.List(ctx, bucket)
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		firstErr error
	)
	pool := pond.New(cleanWorkers, 0, pond.MinWorkers(cleanWorkers))
	for _, key := range keys {
		pool.Submit(func() {
			_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = storageError(err, "delete "+key, bucket)
				}
				mu.Unlock()
			}
		})
	}
	pool.StopAndWait()

	if firstErr != nil {
		return firstErr
	}
	s.logger.Info(fmt.Sprintf("removed %d objects from %s", len(keys), bucket))
	return nil
}

// ListBuckets implements ports.Storage.
func (s *S3) ListBuckets(ctx context.Context, substr string) ([]string, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, storageError(err, "list buckets", substr)
	}
	var names []string
	for _, b := range out.Buckets {
		if name := aws.ToString(b.Name); substr == "" || strings.Contains(name, substr) {
			names = append(names, name)
		}
	}
	return names, nil
}
