package provider

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// notFoundMarker is the text platform CLIs print for absent objects.
const notFoundMarker = "not found"

// CLI runs a platform command line tool.
type CLI struct {
	Runner ports.CommandRunner
	Binary string
	// Env is appended to the process environment, e.g. a pinned KUBECONFIG.
	Env []string
}

// Run executes the tool. The error reports only commands that could not be started.
func (c CLI) Run(ctx context.Context, args ...string) (domain.CommandResult, error) {
	return c.Runner.Run(ctx, domain.Command{Name: c.Binary, Args: args, Env: c.Env})
}

// Exec executes the tool and turns a non-zero exit into domain.ErrDeployment
// carrying op and the diagnostic the tool printed.
func (c CLI) Exec(ctx context.Context, op string, args ...string) (domain.CommandResult, error) {
	res, err := c.Run(ctx, args...)
	if err != nil {
		return res, errors.Join(domain.ErrDeployment, zerr.Wrap(err, op))
	}
	if !res.Succeeded() {
		return res, errors.Join(domain.ErrDeployment, c.failure(op, args, res))
	}
	return res, nil
}

// Exists runs a query command and maps its outcome to an Existence. A failure
// whose diagnostic does not report absence is an error, never NotFound.
func (c CLI) Exists(ctx context.Context, op string, args ...string) (domain.Existence, error) {
	res, err := c.Run(ctx, args...)
	if err != nil {
		return domain.ExistenceUnknown, errors.Join(domain.ErrExistenceCheckFailed, zerr.Wrap(err, op))
	}
	switch {
	case res.Succeeded():
		return domain.Found, nil
	case IsNotFound(res):
		return domain.NotFound, nil
	default:
		return domain.ExistenceUnknown, errors.Join(domain.ErrExistenceCheckFailed, c.failure(op, args, res))
	}
}

// IsNotFound reports a failed command whose diagnostic reports absence.
func IsNotFound(res domain.CommandResult) bool {
	return !res.Succeeded() && strings.Contains(strings.ToLower(res.Diagnostic()), notFoundMarker)
}

func (c CLI) failure(op string, args []string, res domain.CommandResult) error {
	cmd := domain.Command{Name: c.Binary, Args: args}
	err := zerr.With(zerr.New(op), "command", cmd.String())
	err = zerr.With(err, "exit_code", res.ExitCode)
	return zerr.With(err, "diagnostic", res.Diagnostic())
}

// UpdateOrCreate runs update and falls back to create when the tool reports
// the object as absent. Any other failure of update is returned.
func (c CLI) UpdateOrCreate(ctx context.Context, op string, update, create []string) (domain.Materialization, error) {
	res, err := c.Run(ctx, update...)
	if err != nil {
		return 0, errors.Join(domain.ErrDeployment, zerr.Wrap(err, "update "+op))
	}
	if res.Succeeded() {
		return domain.MaterializedExisting, nil
	}
	if !IsNotFound(res) {
		return 0, errors.Join(domain.ErrDeployment, c.failure("update "+op, update, res))
	}
	if _, err := c.Exec(ctx, "create "+op, create...); err != nil {
		return 0, err
	}
	return domain.MaterializedCreated, nil
}
