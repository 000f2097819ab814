package trigger

import (
	"context"
	"encoding/json"
	"errors"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

// decodeOutput fills result from a function response. API gateway style
// responses carry the function output as a JSON string under "body".
func decodeOutput(data []byte, result *domain.ExecutionResult) error {
	if len(data) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if code, ok := out["statusCode"].(float64); ok {
		result.StatusCode = int(code)
	}
	if body, ok := out["body"].(string); ok {
		var inner map[string]any
		if err := json.Unmarshal([]byte(body), &inner); err == nil {
			out = inner
		}
	}
	if id, ok := out["request_id"].(string); ok {
		result.RequestID = id
	}
	result.Output = out
	return nil
}

func invocationError(err error, target string) error {
	return errors.Join(domain.ErrInvocationFailed, zerr.With(zerr.Wrap(err, "invoke"), "target", target))
}

func submit(
	ctx context.Context,
	pool *Pool,
	payload map[string]any,
	invoke func(context.Context, map[string]any) (domain.ExecutionResult, error),
) domain.Invocation {
	run := func(ctx context.Context) (domain.ExecutionResult, error) {
		return invoke(ctx, payload)
	}
	if pool == nil {
		inv := &invocation{done: make(chan struct{})}
		go func() { inv.finish(run(ctx)) }()
		return inv
	}
	return pool.Submit(ctx, run)
}
