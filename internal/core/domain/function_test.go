package domain_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

type stubTrigger struct {
	tt  domain.TriggerType
	url string
}

func (s *stubTrigger) Type() domain.TriggerType { return s.tt }

func (s *stubTrigger) Invoke(context.Context, map[string]any) (domain.ExecutionResult, error) {
	return domain.ExecutionResult{}, nil
}

func (s *stubTrigger) InvokeAsync(context.Context, map[string]any) domain.Invocation { return nil }

func (s *stubTrigger) Serialize() map[string]any {
	return map[string]any{"type": string(s.tt), "url": s.url}
}

func decodeStub(blob map[string]any) (domain.Trigger, error) {
	tt, _ := blob["type"].(string)
	if tt != string(domain.TriggerHTTP) {
		return nil, domain.ErrUnknownTriggerType
	}
	url, _ := blob["url"].(string)
	return &stubTrigger{tt: domain.TriggerHTTP, url: url}, nil
}

func TestFunction_AddTriggerReplacesSameType(t *testing.T) {
	t.Parallel()

	fn := &domain.Function{Name: "f"}
	fn.AddTrigger(&stubTrigger{tt: domain.TriggerHTTP, url: "http://a"})
	fn.AddTrigger(&stubTrigger{tt: domain.TriggerHTTP, url: "http://b"})
	fn.AddTrigger(&stubTrigger{tt: domain.TriggerLibrary})

	require.Len(t, fn.Triggers(), 2)
	got, ok := fn.Trigger(domain.TriggerHTTP)
	require.True(t, ok)
	assert.Equal(t, "http://b", got.(*stubTrigger).url)
}

func TestFunction_SerializeRoundTrip(t *testing.T) {
	t.Parallel()

	fn := &domain.Function{
		Name:       "faasbench-dynamic-html",
		Benchmark:  "110.dynamic-html",
		CodeHash:   "abc123",
		Config:     domain.FunctionConfig{Runtime: "python3.9", MemoryMB: 256, TimeoutSec: 60},
		Identifier: "arn:aws:lambda:us-east-1:1:function:f",
	}
	fn.AddTrigger(&stubTrigger{tt: domain.TriggerHTTP, url: "http://gw/f"})

	blob, err := domain.Normalize(fn.Serialize())
	require.NoError(t, err)

	decoded, err := domain.DecodeFunction(blob, decodeStub)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(fn.Serialize(), decoded.Serialize()))
	assert.False(t, decoded.UpdatedCode)
}

func TestFunction_SerializeOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	blob := (&domain.Function{Name: "f"}).Serialize()
	assert.NotContains(t, blob, "identifier")
	assert.NotContains(t, blob, "bucket")
	assert.Equal(t, []any{}, blob["triggers"])
}

func TestDecodeFunction_UnknownTrigger(t *testing.T) {
	t.Parallel()

	blob := map[string]any{
		"name":     "f",
		"triggers": []any{map[string]any{"type": "Queue"}},
	}
	_, err := domain.DecodeFunction(blob, decodeStub)
	require.ErrorIs(t, err, domain.ErrUnknownTriggerType)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "f", zErr.Metadata()["function"])
}

func TestDecodeFunction_BadShape(t *testing.T) {
	t.Parallel()

	_, err := domain.DecodeFunction(map[string]any{"triggers": "nope"}, decodeStub)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCacheDecodeFailed.Error())
}
