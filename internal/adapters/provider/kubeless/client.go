package kubeless

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Binary is the kubeless command line tool.
const Binary = "kubeless"

// Client implements ports.ProviderClient with the kubeless CLI.
type Client struct {
	cli       provider.CLI
	resources *Resources
	logger    ports.Logger
}

var _ ports.ProviderClient = (*Client)(nil)

// NewClient returns a client running kubeless with env appended to its environment.
func NewClient(runner ports.CommandRunner, env []string, resources *Resources, logger ports.Logger) *Client {
	return &Client{
		cli:       provider.CLI{Runner: runner, Binary: Binary, Env: env},
		resources: resources,
		logger:    logger,
	}
}

// Describe implements ports.ProviderClient.
func (c *Client) Describe(ctx context.Context, name string) (domain.FunctionHandle, domain.Existence, error) {
	existence, err := c.cli.Exists(ctx, "get function", "function", "list", name)
	if err != nil {
		return domain.FunctionHandle{}, existence, zerr.With(err, "function", name)
	}
	return domain.FunctionHandle{Name: name}, existence, nil
}

// Create implements ports.ProviderClient.
func (c *Client) Create(ctx context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	c.logger.Info(fmt.Sprintf("creating function %s from %s", spec.Name, spec.Package.ArtifactPath))

	args := []string{
		"function", "deploy", spec.Name,
		"--runtime", spec.Runtime,
		"--from-file", spec.Package.ArtifactPath,
		"--handler", spec.Entrypoint,
		"--dependencies", dependencies(spec.Package),
		"--memory", strconv.Itoa(spec.MemoryMB) + "Mi",
		"--timeout", strconv.Itoa(spec.TimeoutSec),
	}
	if _, err := c.cli.Exec(ctx, "create function "+spec.Name, args...); err != nil {
		return domain.FunctionHandle{}, err
	}
	return domain.FunctionHandle{Name: spec.Name}, nil
}

// Update implements ports.ProviderClient.
func (c *Client) Update(ctx context.Context, handle domain.FunctionHandle, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	args := []string{
		"function", "update", handle.Name,
		"--from-file", spec.Package.ArtifactPath,
		"--dependencies", dependencies(spec.Package),
	}
	if _, err := c.cli.Exec(ctx, "update function "+handle.Name, args...); err != nil {
		return handle, err
	}
	c.logger.Info(fmt.Sprintf("published new code of %s", handle.Name))
	return handle, nil
}

// AttachTrigger updates the HTTP trigger of the function, creating it when absent.
func (c *Client) AttachTrigger(ctx context.Context, handle domain.FunctionHandle, tt domain.TriggerType) (domain.TriggerSpec, error) {
	if tt != domain.TriggerHTTP {
		return domain.TriggerSpec{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedTrigger, ""),
			"provider", domain.ProviderKubeless.String()), "type", tt.String())
	}

	ingress := c.resources.Ingress
	flags := []string{
		"--function-name", handle.Name,
		"--gateway", ingress.Type,
		"--path", routePath(handle.Name),
		"--hostname", ingress.Hostname,
	}

	update := append([]string{"trigger", "http", "update", handle.Name}, flags...)
	create := append([]string{"trigger", "http", "create", handle.Name}, flags...)
	outcome, err := c.cli.UpdateOrCreate(ctx, "http trigger "+handle.Name, update, create)
	if err != nil {
		return domain.TriggerSpec{}, err
	}
	if outcome == domain.MaterializedCreated {
		c.logger.Info(fmt.Sprintf("created http trigger for %s", handle.Name))
	} else {
		c.logger.Info(fmt.Sprintf("updated http trigger for %s", handle.Name))
	}

	return domain.TriggerSpec{
		Type:     domain.TriggerHTTP,
		Name:     handle.Name,
		URL:      fmt.Sprintf("http://%s/%s", ingress.Hostname, routePath(handle.Name)),
		Function: handle.Name,
	}, nil
}

func routePath(name string) string {
	return "faasbench/" + name
}

// dependencies returns the manifest staged next to the archive, or "" when the
// package has none.
func dependencies(pkg *domain.CodePackage) string {
	layout, ok := domain.LayoutFor(pkg.Language)
	if !ok || pkg.StagingDir == "" {
		return ""
	}
	manifest := filepath.Join(pkg.StagingDir, layout.Manifest)
	if _, err := os.Stat(manifest); err != nil {
		return ""
	}
	return manifest
}
