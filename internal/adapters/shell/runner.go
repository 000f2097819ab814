// Package shell runs external commands such as platform CLIs.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes c to completion and captures stdout and stderr separately.
// A non-zero exit status is reported through the result.
func (r *Runner) Run(ctx context.Context, c domain.Command) (domain.CommandResult, error) {
	if c.Name == "" {
		return domain.CommandResult{}, zerr.Wrap(zerr.New("empty command"), domain.ErrCommandFailed.Error())
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // platform CLI chosen by the provider client
	cmd.Dir = c.Dir
	cmd.Env = resolveEnvironment(os.Environ(), c.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := domain.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", c.String())
}

// resolveEnvironment overlays extra KEY=VALUE entries on the process environment.
func resolveEnvironment(sysEnv, extra []string) []string {
	if len(extra) == 0 {
		return nil
	}

	envMap := make(map[string]string, len(sysEnv)+len(extra))
	for _, set := range [][]string{sysEnv, extra} {
		for _, entry := range set {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
