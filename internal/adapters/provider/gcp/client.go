package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/api/cloudfunctions/v1"
	"google.golang.org/api/googleapi"
)

// Function status values reported by the API.
const (
	statusActive   = "ACTIVE"
	statusOffline  = "OFFLINE"
	codeBucketName = "faasbench-code"
)

// Client implements ports.ProviderClient on Cloud Functions. Archives are
// uploaded to the code bucket and referenced by their gs:// URL.
type Client struct {
	api     FunctionsAPI
	storage ports.Storage
	config  *Config
	logger  ports.Logger
}

var (
	_ ports.ProviderClient = (*Client)(nil)
	_ ports.StatusReporter = (*Client)(nil)
	_ ports.LibraryInvoker = (*Client)(nil)
)

// NewClient returns a client deploying into the project and region of cfg.
func NewClient(api FunctionsAPI, st ports.Storage, cfg *Config, logger ports.Logger) *Client {
	return &Client{api: api, storage: st, config: cfg, logger: logger}
}

// FullName returns the resource name of a function.
func (c *Client) FullName(name string) string {
	if strings.HasPrefix(name, "projects/") {
		return name
	}
	return c.config.Location() + "/functions/" + name
}

// Describe implements ports.ProviderClient.
func (c *Client) Describe(ctx context.Context, name string) (domain.FunctionHandle, domain.Existence, error) {
	fn, err := c.api.Get(ctx, c.FullName(name))
	switch {
	case isStatus(err, http.StatusNotFound):
		return domain.FunctionHandle{}, domain.NotFound, nil
	case err != nil:
		return domain.FunctionHandle{}, domain.ExistenceUnknown,
			errors.Join(domain.ErrExistenceCheckFailed, zerr.With(zerr.Wrap(err, "get function"), "function", name))
	}
	return domain.FunctionHandle{Name: name, Identifier: fn.Name}, domain.Found, nil
}

// Create implements ports.ProviderClient.
func (c *Client) Create(ctx context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	source, err := c.uploadArchive(ctx, spec)
	if err != nil {
		return domain.FunctionHandle{}, err
	}

	full := c.FullName(spec.Name)
	c.logger.Info(fmt.Sprintf("creating function %s in %s", spec.Name, c.config.Region()))
	err = c.api.Create(ctx, c.config.Location(), &cloudfunctions.CloudFunction{
		Name:              full,
		EntryPoint:        entryPoint(spec.Entrypoint),
		Runtime:           spec.Runtime,
		AvailableMemoryMb: int64(spec.MemoryMB),
		Timeout:           fmt.Sprintf("%ds", spec.TimeoutSec),
		SourceArchiveUrl:  source,
		HttpsTrigger:      &cloudfunctions.HttpsTrigger{},
	})
	if err != nil {
		return domain.FunctionHandle{}, errors.Join(domain.ErrDeployment,
			zerr.With(zerr.Wrap(err, "create function"), "function", spec.Name))
	}
	return domain.FunctionHandle{Name: spec.Name, Identifier: full}, nil
}

// Update implements ports.ProviderClient.
func (c *Client) Update(ctx context.Context, handle domain.FunctionHandle, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	source, err := c.uploadArchive(ctx, spec)
	if err != nil {
		return handle, err
	}

	full := c.FullName(handle.Name)
	err = c.api.Patch(ctx, full, &cloudfunctions.CloudFunction{
		SourceArchiveUrl:  source,
		AvailableMemoryMb: int64(spec.MemoryMB),
		Timeout:           fmt.Sprintf("%ds", spec.TimeoutSec),
	}, "sourceArchiveUrl,availableMemoryMb,timeout")
	if err != nil {
		return handle, errors.Join(domain.ErrDeployment,
			zerr.With(zerr.Wrap(err, "update function"), "function", handle.Name))
	}
	c.logger.Info(fmt.Sprintf("published new code of %s", handle.Name))
	handle.Identifier = full
	return handle, nil
}

// AttachTrigger opens the HTTPS trigger to unauthenticated callers, or
// returns a library trigger invoking through the API.
func (c *Client) AttachTrigger(ctx context.Context, handle domain.FunctionHandle, tt domain.TriggerType) (domain.TriggerSpec, error) {
	full := c.FullName(handle.Name)
	switch tt {
	case domain.TriggerLibrary:
		return domain.TriggerSpec{Type: tt, Function: full}, nil
	case domain.TriggerHTTP:
	default:
		return domain.TriggerSpec{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedTrigger, ""),
			"provider", domain.ProviderGCP.String()), "type", tt.String())
	}

	fn, err := c.api.Get(ctx, full)
	if err != nil {
		return domain.TriggerSpec{}, errors.Join(domain.ErrDeployment,
			zerr.With(zerr.Wrap(err, "get function"), "function", handle.Name))
	}
	if fn.HttpsTrigger == nil || fn.HttpsTrigger.Url == "" {
		return domain.TriggerSpec{}, zerr.With(zerr.Wrap(domain.ErrFunctionHasNoTrigger, ""), "function", handle.Name)
	}
	if err := c.api.AllowUnauthenticated(ctx, full); err != nil {
		return domain.TriggerSpec{}, provider.ResourceCreation(err, "invoker policy", handle.Name)
	}
	return domain.TriggerSpec{Type: tt, Name: handle.Name, URL: fn.HttpsTrigger.Url, Function: full}, nil
}

// Ready implements ports.StatusReporter. An offline function is a failed deployment.
func (c *Client) Ready(ctx context.Context, handle domain.FunctionHandle) (bool, error) {
	fn, err := c.api.Get(ctx, c.FullName(handle.Name))
	if err != nil {
		return false, errors.Join(domain.ErrDeployment, zerr.Wrap(err, "get function"))
	}
	switch fn.Status {
	case statusActive:
		return true, nil
	case statusOffline:
		return false, zerr.With(zerr.With(zerr.Wrap(domain.ErrDeployment, ""), "function", handle.Name), "status", fn.Status)
	default:
		return false, nil
	}
}

// InvokeLibrary implements ports.LibraryInvoker.
func (c *Client) InvokeLibrary(ctx context.Context, function string, payload []byte) ([]byte, error) {
	res, err := c.api.Call(ctx, c.FullName(function), string(payload))
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, zerr.With(zerr.New("function returned an error"), "diagnostic", res.Error)
	}
	return []byte(res.Result), nil
}

// uploadArchive stores the artifact in the code bucket, creating the bucket
// on first use, and returns its gs:// URL.
func (c *Client) uploadArchive(ctx context.Context, spec domain.DeploySpec) (string, error) {
	if c.storage == nil {
		return "", zerr.With(zerr.Wrap(domain.ErrStorage, ""), "provider", domain.ProviderGCP.String())
	}
	res := c.config.GCPResources()
	if res.CodeBucket == "" {
		bucket, err := c.storage.CreateOrReuseBucket(ctx, codeBucketName)
		if err != nil {
			return "", err
		}
		res.CodeBucket = bucket
	}

	f, err := os.Open(spec.Package.ArtifactPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "open archive"), "path", spec.Package.ArtifactPath)
	}
	defer f.Close()

	key := path.Join(spec.Name, filepath.Base(spec.Package.ArtifactPath))
	if err := c.storage.Upload(ctx, res.CodeBucket, key, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", res.CodeBucket, key), nil
}

// entryPoint returns the exported function of a module-qualified handler.
func entryPoint(handler string) string {
	if i := strings.LastIndex(handler, "."); i >= 0 {
		return handler[i+1:]
	}
	return handler
}

func isStatus(err error, code int) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
