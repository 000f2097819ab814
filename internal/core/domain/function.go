package domain

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// TriggerType discriminates serialized triggers.
type TriggerType string

// Known trigger types.
const (
	TriggerHTTP    TriggerType = "HTTP"
	TriggerLibrary TriggerType = "Library"
)

func (t TriggerType) String() string {
	return string(t)
}

// ExecutionResult is the outcome of a single invocation as seen by the client.
type ExecutionResult struct {
	RequestID   string
	StatusCode  int
	Output      map[string]any
	ClientBegin time.Time
	ClientEnd   time.Time
}

// ClientTime is the round trip time measured by the caller.
func (r ExecutionResult) ClientTime() time.Duration {
	return r.ClientEnd.Sub(r.ClientBegin)
}

// Invocation is a handle on an asynchronous invocation.
type Invocation interface {
	// Wait blocks until the invocation finishes or ctx is done.
	Wait(ctx context.Context) (ExecutionResult, error)
}

// Trigger is an invocation entry point bound to a function.
type Trigger interface {
	Type() TriggerType
	Invoke(ctx context.Context, payload map[string]any) (ExecutionResult, error)
	InvokeAsync(ctx context.Context, payload map[string]any) Invocation
	// Serialize returns the cache representation, always carrying a "type" key.
	Serialize() map[string]any
}

// TriggerSpec is what a provider reports after attaching a trigger.
type TriggerSpec struct {
	Type     TriggerType
	Name     string
	URL      string
	Function string
	// Storage carries object storage credentials for platforms whose functions
	// receive them in the request payload.
	Storage map[string]string
}

// FunctionConfig holds the provider-facing runtime settings of a function.
type FunctionConfig struct {
	Runtime    string `mapstructure:"runtime"`
	MemoryMB   int    `mapstructure:"memory"`
	TimeoutSec int    `mapstructure:"timeout"`
}

// FunctionHandle identifies a function at the provider.
type FunctionHandle struct {
	Name       string
	Identifier string
}

// Function is a deployed, invokable unit of benchmark code.
type Function struct {
	Name       string
	Benchmark  string
	CodeHash   string
	Config     FunctionConfig
	Identifier string
	Bucket     string
	// UpdatedCode is set when the code was replaced during this session.
	UpdatedCode bool

	triggers []Trigger
}

// Handle returns the provider handle of the function.
func (f *Function) Handle() FunctionHandle {
	return FunctionHandle{Name: f.Name, Identifier: f.Identifier}
}

// AddTrigger attaches t, replacing any trigger of the same type.
func (f *Function) AddTrigger(t Trigger) {
	for i, existing := range f.triggers {
		if existing.Type() == t.Type() {
			f.triggers[i] = t
			return
		}
	}
	f.triggers = append(f.triggers, t)
}

// Trigger returns the trigger of the given type.
func (f *Function) Trigger(tt TriggerType) (Trigger, bool) {
	for _, t := range f.triggers {
		if t.Type() == tt {
			return t, true
		}
	}
	return nil, false
}

// Triggers returns all triggers of the function.
func (f *Function) Triggers() []Trigger {
	return slices.Clone(f.triggers)
}

// Serialize returns the cache representation of the function.
func (f *Function) Serialize() map[string]any {
	triggers := make([]any, 0, len(f.triggers))
	for _, t := range f.triggers {
		triggers = append(triggers, t.Serialize())
	}

	out := map[string]any{
		"name":      f.Name,
		"benchmark": f.Benchmark,
		"hash":      f.CodeHash,
		"triggers":  triggers,
		"config": map[string]any{
			"runtime": f.Config.Runtime,
			"memory":  f.Config.MemoryMB,
			"timeout": f.Config.TimeoutSec,
		},
	}
	if f.Identifier != "" {
		out["identifier"] = f.Identifier
	}
	if f.Bucket != "" {
		out["bucket"] = f.Bucket
	}
	return out
}

type functionRecord struct {
	Name       string           `mapstructure:"name"`
	Benchmark  string           `mapstructure:"benchmark"`
	Hash       string           `mapstructure:"hash"`
	Config     FunctionConfig   `mapstructure:"config"`
	Identifier string           `mapstructure:"identifier"`
	Bucket     string           `mapstructure:"bucket"`
	Triggers   []map[string]any `mapstructure:"triggers"`
}

// DecodeFunction rebuilds a function from its cache representation.
// Triggers are rebuilt by decodeTrigger.
func DecodeFunction(blob any, decodeTrigger func(map[string]any) (Trigger, error)) (*Function, error) {
	var rec functionRecord
	if err := DecodeTree(blob, &rec); err != nil {
		return nil, errors.Join(ErrCacheDecodeFailed, err)
	}

	fn := &Function{
		Name:       rec.Name,
		Benchmark:  rec.Benchmark,
		CodeHash:   rec.Hash,
		Config:     rec.Config,
		Identifier: rec.Identifier,
		Bucket:     rec.Bucket,
	}
	for _, raw := range rec.Triggers {
		t, err := decodeTrigger(raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "decode trigger"), "function", rec.Name)
		}
		fn.AddTrigger(t)
	}
	return fn, nil
}
