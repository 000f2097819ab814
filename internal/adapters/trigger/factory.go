package trigger

import (
	"errors"
	"fmt"
	"net/http"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

type decoder func(map[string]any) (domain.Trigger, error)

// decoders is the closed set of serialized trigger types.
var decoders = map[domain.TriggerType]decoder{
	domain.TriggerHTTP:    decodeHTTP,
	domain.TriggerLibrary: decodeLibrary,
}

// Factory builds triggers bound to one deployment session.
type Factory struct {
	logger  ports.Logger
	pool    *Pool
	invoker ports.LibraryInvoker
	client  *http.Client
}

var _ ports.TriggerFactory = (*Factory)(nil)

// NewFactory returns a factory binding triggers to pool and invoker. The invoker
// may be nil for providers without SDK invocation.
func NewFactory(logger ports.Logger, pool *Pool, invoker ports.LibraryInvoker) *Factory {
	return &Factory{logger: logger, pool: pool, invoker: invoker, client: http.DefaultClient}
}

// WithHTTPClient returns f using client for HTTP triggers.
func (f *Factory) WithHTTPClient(client *http.Client) *Factory {
	cp := *f
	cp.client = client
	return &cp
}

// New implements ports.TriggerFactory.
func (f *Factory) New(spec domain.TriggerSpec) (domain.Trigger, error) {
	var t domain.Trigger
	switch spec.Type {
	case domain.TriggerHTTP:
		t = NewHTTPTrigger(spec.URL, spec.Storage)
	case domain.TriggerLibrary:
		t = NewLibraryTrigger(spec.Function)
	default:
		return nil, unknownType(spec.Type.String())
	}
	if err := f.Bind(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Decode implements ports.TriggerFactory.
func (f *Factory) Decode(blob map[string]any) (domain.Trigger, error) {
	name, _ := blob["type"].(string)
	decode, ok := decoders[domain.TriggerType(name)]
	if !ok {
		return nil, unknownType(name)
	}
	t, err := decode(blob)
	if err != nil {
		return nil, errors.Join(domain.ErrCacheDecodeFailed, zerr.With(zerr.Wrap(err, "decode trigger"), "type", name))
	}
	return t, nil
}

// Bind implements ports.TriggerFactory.
func (f *Factory) Bind(t domain.Trigger) error {
	switch t := t.(type) {
	case *HTTPTrigger:
		t.client = f.client
		t.pool = f.pool
		t.logger = f.logger
	case *LibraryTrigger:
		if f.invoker == nil {
			f.logger.Warn(fmt.Sprintf("no library invoker for %s, trigger stays unbound", t.function))
		}
		t.invoker = f.invoker
		t.pool = f.pool
	default:
		return unknownType(t.Type().String())
	}
	return nil
}

func unknownType(name string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnknownTriggerType, ""), "type", name)
}
