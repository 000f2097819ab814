package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/faasbench/internal/engine/settle"
	"go.trai.ch/zerr"
)

// DirectUploadBytes is the largest archive sent inline. Larger archives go
// through the code bucket.
const DirectUploadBytes = 50 << 20

const codeBucketName = "faasbench-code"

// Client implements ports.ProviderClient on Lambda.
type Client struct {
	lambda     LambdaAPI
	iam        IAMAPI
	gateway    GatewayAPI
	storage    ports.Storage
	config     *Config
	logger     ports.Logger
	waiter     *settle.Waiter
	roleSettle time.Duration
}

var (
	_ ports.ProviderClient = (*Client)(nil)
	_ ports.StatusReporter = (*Client)(nil)
	_ ports.LibraryInvoker = (*Client)(nil)
)

// NewClient returns a client for the account and region of cfg.
func NewClient(fn LambdaAPI, roles IAMAPI, gateway GatewayAPI, st ports.Storage, cfg *Config, logger ports.Logger) *Client {
	return &Client{
		lambda:     fn,
		iam:        roles,
		gateway:    gateway,
		storage:    st,
		config:     cfg,
		logger:     logger,
		waiter:     settle.New(logger),
		roleSettle: RoleSettle,
	}
}

// WithRoleSettle overrides the wait after a role was created.
func (c *Client) WithRoleSettle(d time.Duration) *Client {
	c.roleSettle = d
	return c
}

// Describe implements ports.ProviderClient.
func (c *Client) Describe(ctx context.Context, name string) (domain.FunctionHandle, domain.Existence, error) {
	out, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: awssdk.String(name)})
	var missing *lambdatypes.ResourceNotFoundException
	switch {
	case errors.As(err, &missing):
		return domain.FunctionHandle{}, domain.NotFound, nil
	case err != nil:
		return domain.FunctionHandle{}, domain.ExistenceUnknown,
			errors.Join(domain.ErrExistenceCheckFailed, zerr.With(zerr.Wrap(err, "get function"), "function", name))
	}
	return domain.FunctionHandle{Name: name, Identifier: awssdk.ToString(out.Configuration.FunctionArn)}, domain.Found, nil
}

// Create implements ports.ProviderClient.
func (c *Client) Create(ctx context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	role, _, err := c.EnsureLambdaRole(ctx)
	if err != nil {
		return domain.FunctionHandle{}, err
	}
	code, err := c.functionCode(ctx, spec)
	if err != nil {
		return domain.FunctionHandle{}, err
	}

	c.logger.Info(fmt.Sprintf("creating function %s in %s", spec.Name, c.config.Region()))
	out, err := c.lambda.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: awssdk.String(spec.Name),
		Role:         awssdk.String(role),
		Code:         code,
		Handler:      awssdk.String(spec.Entrypoint),
		Runtime:      lambdatypes.Runtime(spec.Runtime),
		MemorySize:   awssdk.Int32(int32(spec.MemoryMB)),
		Timeout:      awssdk.Int32(int32(spec.TimeoutSec)),
	})
	if err != nil {
		return domain.FunctionHandle{}, errors.Join(domain.ErrDeployment,
			zerr.With(zerr.Wrap(err, "create function"), "function", spec.Name))
	}
	return domain.FunctionHandle{Name: spec.Name, Identifier: awssdk.ToString(out.FunctionArn)}, nil
}

// Update implements ports.ProviderClient. Only the code is replaced.
func (c *Client) Update(ctx context.Context, handle domain.FunctionHandle, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	code, err := c.functionCode(ctx, spec)
	if err != nil {
		return handle, err
	}
	out, err := c.lambda.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: awssdk.String(handle.Name),
		ZipFile:      code.ZipFile,
		S3Bucket:     code.S3Bucket,
		S3Key:        code.S3Key,
	})
	if err != nil {
		return handle, errors.Join(domain.ErrDeployment,
			zerr.With(zerr.Wrap(err, "update function code"), "function", handle.Name))
	}
	c.logger.Info(fmt.Sprintf("published new code of %s", handle.Name))
	handle.Identifier = awssdk.ToString(out.FunctionArn)
	return handle, nil
}

// AttachTrigger exposes the function through an HTTP API named after it, or
// returns a library trigger invoking through the SDK.
func (c *Client) AttachTrigger(ctx context.Context, handle domain.FunctionHandle, tt domain.TriggerType) (domain.TriggerSpec, error) {
	switch tt {
	case domain.TriggerLibrary:
		return domain.TriggerSpec{Type: tt, Function: handle.Name}, nil
	case domain.TriggerHTTP:
	default:
		return domain.TriggerSpec{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedTrigger, ""),
			"provider", domain.ProviderAWS.String()), "type", tt.String())
	}

	arn := handle.Identifier
	if arn == "" {
		described, existence, err := c.Describe(ctx, handle.Name)
		if err != nil {
			return domain.TriggerSpec{}, err
		}
		if existence != domain.Found {
			return domain.TriggerSpec{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrDeployment, "attach HTTP trigger"),
				"function", handle.Name), "diagnostic", "function does not exist")
		}
		arn = described.Identifier
	}
	api, _, err := c.EnsureHTTPAPI(ctx, handle.Name+"-http-api", arn)
	if err != nil {
		return domain.TriggerSpec{}, err
	}
	return domain.TriggerSpec{Type: tt, Name: handle.Name + "-http-api", URL: api.Endpoint, Function: handle.Name}, nil
}

// Ready implements ports.StatusReporter. A function is ready once it is
// active and no update is in progress.
func (c *Client) Ready(ctx context.Context, handle domain.FunctionHandle) (bool, error) {
	out, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: awssdk.String(handle.Name)})
	if err != nil {
		return false, errors.Join(domain.ErrDeployment, zerr.Wrap(err, "get function"))
	}
	cfg := out.Configuration
	switch {
	case cfg.State == lambdatypes.StateFailed:
		return false, zerr.With(zerr.With(zerr.Wrap(domain.ErrDeployment, ""),
			"function", handle.Name), "diagnostic", awssdk.ToString(cfg.StateReason))
	case cfg.LastUpdateStatus == lambdatypes.LastUpdateStatusFailed:
		return false, zerr.With(zerr.With(zerr.Wrap(domain.ErrDeployment, ""),
			"function", handle.Name), "diagnostic", awssdk.ToString(cfg.LastUpdateStatusReason))
	}
	return cfg.State == lambdatypes.StateActive && cfg.LastUpdateStatus != lambdatypes.LastUpdateStatusInProgress, nil
}

// InvokeLibrary implements ports.LibraryInvoker.
func (c *Client) InvokeLibrary(ctx context.Context, function string, payload []byte) ([]byte, error) {
	out, err := c.lambda.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: awssdk.String(function),
		Payload:      payload,
	})
	if err != nil {
		return nil, err
	}
	if out.FunctionError != nil {
		return nil, zerr.With(zerr.With(zerr.New("function returned an error"),
			"kind", awssdk.ToString(out.FunctionError)), "diagnostic", string(out.Payload))
	}
	return out.Payload, nil
}

// functionCode sends small archives inline and uploads the others to the
// code bucket, creating it on first use.
func (c *Client) functionCode(ctx context.Context, spec domain.DeploySpec) (*lambdatypes.FunctionCode, error) {
	pkg := spec.Package
	if pkg.Size <= DirectUploadBytes {
		data, err := os.ReadFile(pkg.ArtifactPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "read archive"), "path", pkg.ArtifactPath)
		}
		return &lambdatypes.FunctionCode{ZipFile: data}, nil
	}

	if c.storage == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStorage, ""), "provider", domain.ProviderAWS.String())
	}
	res := c.config.AWSResources()
	if res.CodeBucket == "" {
		bucket, err := c.storage.CreateOrReuseBucket(ctx, codeBucketName)
		if err != nil {
			return nil, err
		}
		res.CodeBucket = bucket
	}

	f, err := os.Open(pkg.ArtifactPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "open archive"), "path", pkg.ArtifactPath)
	}
	defer f.Close()

	key := path.Join(spec.Name, filepath.Base(pkg.ArtifactPath))
	c.logger.Info(fmt.Sprintf("uploading %.2f MB archive to s3://%s/%s", pkg.SizeMB(), res.CodeBucket, key))
	if err := c.storage.Upload(ctx, res.CodeBucket, key, f); err != nil {
		return nil, err
	}
	return &lambdatypes.FunctionCode{S3Bucket: awssdk.String(res.CodeBucket), S3Key: awssdk.String(key)}, nil
}
