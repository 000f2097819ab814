package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"time"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// StoragePayloadKey is the payload entry carrying object storage credentials.
const StoragePayloadKey = "storage"

// HTTPTrigger invokes a function through its public URL.
type HTTPTrigger struct {
	url     string
	storage map[string]string

	client *http.Client
	pool   *Pool
	logger ports.Logger
}

var _ domain.Trigger = (*HTTPTrigger)(nil)

// NewHTTPTrigger returns an unbound trigger for url.
func NewHTTPTrigger(url string, storage map[string]string) *HTTPTrigger {
	return &HTTPTrigger{url: url, storage: maps.Clone(storage)}
}

// URL returns the invocation address.
func (t *HTTPTrigger) URL() string {
	return t.url
}

// Type implements domain.Trigger.
func (t *HTTPTrigger) Type() domain.TriggerType {
	return domain.TriggerHTTP
}

// Invoke posts payload as JSON and decodes the JSON response.
func (t *HTTPTrigger) Invoke(ctx context.Context, payload map[string]any) (domain.ExecutionResult, error) {
	body, err := json.Marshal(t.withStorage(payload))
	if err != nil {
		return domain.ExecutionResult{}, invocationError(err, t.url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return domain.ExecutionResult{}, invocationError(err, t.url)
	}
	req.Header.Set("Content-Type", "application/json")

	client := t.client
	if client == nil {
		client = http.DefaultClient
	}

	result := domain.ExecutionResult{ClientBegin: time.Now()}
	resp, err := client.Do(req)
	if err != nil {
		return result, invocationError(err, t.url)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	result.ClientEnd = time.Now()
	result.StatusCode = resp.StatusCode
	if err != nil {
		return result, invocationError(err, t.url)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, errors.Join(domain.ErrInvocationFailed, zerr.With(zerr.With(
			zerr.New(http.StatusText(resp.StatusCode)), "url", t.url), "diagnostic", string(data)))
	}

	if err := decodeOutput(data, &result); err != nil {
		return result, invocationError(err, t.url)
	}
	if t.logger != nil {
		t.logger.Info("invoked " + t.url + " in " + result.ClientTime().String())
	}
	return result, nil
}

// InvokeAsync implements domain.Trigger.
func (t *HTTPTrigger) InvokeAsync(ctx context.Context, payload map[string]any) domain.Invocation {
	return submit(ctx, t.pool, payload, t.Invoke)
}

// Serialize implements domain.Trigger.
func (t *HTTPTrigger) Serialize() map[string]any {
	out := map[string]any{
		"type": domain.TriggerHTTP.String(),
		"url":  t.url,
	}
	if len(t.storage) > 0 {
		storage := make(map[string]any, len(t.storage))
		for k, v := range t.storage {
			storage[k] = v
		}
		out["storage"] = storage
	}
	return out
}

func (t *HTTPTrigger) withStorage(payload map[string]any) map[string]any {
	if len(t.storage) == 0 {
		return payload
	}
	if _, ok := payload[StoragePayloadKey]; ok {
		return payload
	}
	out := maps.Clone(payload)
	if out == nil {
		out = map[string]any{}
	}
	out[StoragePayloadKey] = t.storage
	return out
}

type httpRecord struct {
	URL     string            `mapstructure:"url"`
	Storage map[string]string `mapstructure:"storage"`
}

func decodeHTTP(blob map[string]any) (domain.Trigger, error) {
	var rec httpRecord
	if err := domain.DecodeTree(blob, &rec); err != nil {
		return nil, err
	}
	if rec.URL == "" {
		return nil, zerr.New("http trigger has no url")
	}
	return NewHTTPTrigger(rec.URL, rec.Storage), nil
}
