package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// LibraryTrigger invokes a function through the provider SDK.
type LibraryTrigger struct {
	function string

	invoker ports.LibraryInvoker
	pool    *Pool
}

var _ domain.Trigger = (*LibraryTrigger)(nil)

// NewLibraryTrigger returns an unbound trigger for function.
func NewLibraryTrigger(function string) *LibraryTrigger {
	return &LibraryTrigger{function: function}
}

// Type implements domain.Trigger.
func (t *LibraryTrigger) Type() domain.TriggerType {
	return domain.TriggerLibrary
}

// Invoke calls the function synchronously.
func (t *LibraryTrigger) Invoke(ctx context.Context, payload map[string]any) (domain.ExecutionResult, error) {
	if t.invoker == nil {
		return domain.ExecutionResult{}, errors.Join(domain.ErrTriggerUnbound,
			zerr.With(zerr.New("library trigger"), "function", t.function))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ExecutionResult{}, invocationError(err, t.function)
	}

	result := domain.ExecutionResult{ClientBegin: time.Now()}
	out, err := t.invoker.InvokeLibrary(ctx, t.function, body)
	result.ClientEnd = time.Now()
	if err != nil {
		return result, invocationError(err, t.function)
	}
	if err := decodeOutput(out, &result); err != nil {
		return result, invocationError(err, t.function)
	}
	return result, nil
}

// InvokeAsync implements domain.Trigger.
func (t *LibraryTrigger) InvokeAsync(ctx context.Context, payload map[string]any) domain.Invocation {
	return submit(ctx, t.pool, payload, t.Invoke)
}

// Serialize implements domain.Trigger.
func (t *LibraryTrigger) Serialize() map[string]any {
	return map[string]any{
		"type":     domain.TriggerLibrary.String(),
		"function": t.function,
	}
}

type libraryRecord struct {
	Function string `mapstructure:"function"`
}

func decodeLibrary(blob map[string]any) (domain.Trigger, error) {
	var rec libraryRecord
	if err := domain.DecodeTree(blob, &rec); err != nil {
		return nil, err
	}
	if rec.Function == "" {
		return nil, zerr.New("library trigger has no function")
	}
	return NewLibraryTrigger(rec.Function), nil
}
