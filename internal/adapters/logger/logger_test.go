package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/logger"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*bytes.Buffer, *logger.Logger) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(&buf)
	return &buf, lg
}

func TestLogger_InfoAndWarn(t *testing.T) {
	buf, lg := newBufferedLogger(t)

	lg.Info("using cached credentials for aws")
	lg.Warn("no credentials found for fission")

	assert.Equal(t, "using cached credentials for aws\n! no credentials found for fission\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	buf, lg := newBufferedLogger(t)

	cause := zerr.With(zerr.Wrap(errors.New("exit status 1"), "create function"), "function", "faasbench-dynamic-html")
	lg.Error(errors.Join(domain.ErrDeployment, cause))

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	buf, lg := newBufferedLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf, lg := newBufferedLogger(t)
	lg.SetJSON(true)

	lg.Info("function created")
	lg.Error(zerr.Wrap(errors.New("boom"), "update function"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "function created", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "update function: boom", failure["error"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	buf, lg := newBufferedLogger(t)

	lg.SetJSON(true)
	lg.SetJSON(false)
	lg.Info("back to pretty")

	assert.Equal(t, "back to pretty\n", buf.String())
}
