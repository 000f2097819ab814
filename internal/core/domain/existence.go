package domain

import (
	"strings"
)

// Existence is the outcome of a provider-side existence query.
// A failed query is reported through the accompanying error, never as NotFound.
type Existence uint8

const (
	// ExistenceUnknown is returned together with an error.
	ExistenceUnknown Existence = iota
	// Found means the resource exists at the provider.
	Found
	// NotFound means the provider positively reported absence.
	NotFound
)

func (e Existence) String() string {
	switch e {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Materialization is the outcome of a query-before-create resource operation.
type Materialization uint8

const (
	// MaterializedExisting means the resource was already present.
	MaterializedExisting Materialization = iota + 1
	// MaterializedCreated means the resource was created by this call.
	MaterializedCreated
)

func (m Materialization) String() string {
	switch m {
	case MaterializedExisting:
		return "existing"
	case MaterializedCreated:
		return "created"
	default:
		return "unknown"
	}
}

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandResult is the captured outcome of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports a zero exit code.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Diagnostic returns the text a failed command reported.
func (r CommandResult) Diagnostic() string {
	msg := strings.TrimSpace(r.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(r.Stdout)
	}
	return msg
}
