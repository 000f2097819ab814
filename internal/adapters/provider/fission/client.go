package fission

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Binary is the fission command line tool.
const Binary = "fission"

// BuildCommand runs the build script packaged at the archive root.
const BuildCommand = "./" + domain.BuildScriptName

// images maps a language to its runtime and builder image prefixes.
var images = map[domain.Language][2]string{
	domain.LanguagePython: {"fission/python-env-", "fission/python-builder-"},
	domain.LanguageNodeJS: {"fission/node-env-", "fission/node-builder-"},
}

// Client implements ports.ProviderClient with the fission CLI.
type Client struct {
	cli       provider.CLI
	resources *Resources
	logger    ports.Logger
}

var _ ports.ProviderClient = (*Client)(nil)

// NewClient returns a client running fission with env appended to its environment.
func NewClient(runner ports.CommandRunner, env []string, resources *Resources, logger ports.Logger) *Client {
	return &Client{
		cli:       provider.CLI{Runner: runner, Binary: Binary, Env: env},
		resources: resources,
		logger:    logger,
	}
}

// EnvironmentName returns the fission environment serving a language version.
func EnvironmentName(lang domain.Language, version string) string {
	return lang.String() + "-" + strings.ReplaceAll(version, ".", "")
}

// EnsureEnvironment creates the environment of the language version unless it exists.
func (c *Client) EnsureEnvironment(ctx context.Context, lang domain.Language, version string) (domain.Materialization, error) {
	name := EnvironmentName(lang, version)
	existence, err := c.cli.Exists(ctx, "get environment "+name, "env", "get", "--name", name)
	if err != nil {
		return 0, err
	}
	if existence == domain.Found {
		return domain.MaterializedExisting, nil
	}

	image, ok := images[lang]
	if !ok {
		return 0, zerr.With(zerr.Wrap(domain.ErrUnsupportedLanguage, ""), "language", lang.String())
	}
	_, err = c.cli.Exec(ctx, "create environment "+name,
		"env", "create", "--name", name,
		"--image", image[0]+version,
		"--builder", image[1]+version,
	)
	if err != nil {
		return 0, provider.ResourceCreation(err, "environment", name)
	}
	c.logger.Info(fmt.Sprintf("created fission environment %s", name))
	return domain.MaterializedCreated, nil
}

// Describe implements ports.ProviderClient.
func (c *Client) Describe(ctx context.Context, name string) (domain.FunctionHandle, domain.Existence, error) {
	existence, err := c.cli.Exists(ctx, "get function", "function", "get", "--name", name)
	if err != nil {
		return domain.FunctionHandle{}, existence, zerr.With(err, "function", name)
	}
	return domain.FunctionHandle{Name: name}, existence, nil
}

// Create implements ports.ProviderClient.
func (c *Client) Create(ctx context.Context, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	pkg := spec.Package
	if _, err := c.EnsureEnvironment(ctx, pkg.Language, pkg.LanguageVersion); err != nil {
		return domain.FunctionHandle{}, err
	}

	c.logger.Info(fmt.Sprintf("creating function %s from %s", spec.Name, pkg.ArtifactPath))
	_, err := c.cli.Exec(ctx, "create function "+spec.Name,
		"function", "create",
		"--name", spec.Name,
		"--env", spec.Runtime,
		"--src", pkg.ArtifactPath,
		"--entrypoint", spec.Entrypoint,
		"--buildcmd", BuildCommand,
		"--executortype", "newdeploy",
		"--maxmemory", strconv.Itoa(spec.MemoryMB),
		"--fntimeout", strconv.Itoa(spec.TimeoutSec),
	)
	if err != nil {
		return domain.FunctionHandle{}, err
	}
	return domain.FunctionHandle{Name: spec.Name}, nil
}

// Update implements ports.ProviderClient.
func (c *Client) Update(ctx context.Context, handle domain.FunctionHandle, spec domain.DeploySpec) (domain.FunctionHandle, error) {
	_, err := c.cli.Exec(ctx, "update function "+handle.Name,
		"function", "update",
		"--name", handle.Name,
		"--src", spec.Package.ArtifactPath,
		"--buildcmd", BuildCommand,
	)
	if err != nil {
		return handle, err
	}
	c.logger.Info(fmt.Sprintf("published new code of %s", handle.Name))
	return handle, nil
}

// AttachTrigger updates the HTTP trigger of the function, creating it when absent.
func (c *Client) AttachTrigger(ctx context.Context, handle domain.FunctionHandle, tt domain.TriggerType) (domain.TriggerSpec, error) {
	if tt != domain.TriggerHTTP {
		return domain.TriggerSpec{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedTrigger, ""),
			"provider", domain.ProviderFission.String()), "type", tt.String())
	}

	name := "trigger-" + handle.Name
	flags := []string{
		"--name", name,
		"--function", handle.Name,
		"--url", "/" + routePath(handle.Name),
		"--method", "GET",
		"--method", "POST",
	}
	outcome, err := c.cli.UpdateOrCreate(ctx, "http trigger "+name,
		append([]string{"httptrigger", "update"}, flags...),
		append([]string{"httptrigger", "create"}, flags...),
	)
	if err != nil {
		return domain.TriggerSpec{}, err
	}
	if outcome == domain.MaterializedCreated {
		c.logger.Info(fmt.Sprintf("created http trigger %s", name))
	}

	return domain.TriggerSpec{
		Type:     domain.TriggerHTTP,
		Name:     name,
		URL:      fmt.Sprintf("http://%s/%s", c.resources.Ingress.Hostname, routePath(handle.Name)),
		Function: handle.Name,
		Storage:  c.resources.PayloadStorage(),
	}, nil
}

func routePath(name string) string {
	return "faasbench/" + name
}
