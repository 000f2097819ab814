package ports

import (
	"context"

	"go.trai.ch/faasbench/internal/core/domain"
)

// CommandRunner runs external commands, such as platform CLIs.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and captures its output. A non-zero exit is reported in the
	// result, the error is reserved for commands that could not be run.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
