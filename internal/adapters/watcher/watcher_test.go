package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/watcher"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func nextBatch(t *testing.T, w *watcher.Watcher) []string {
	t.Helper()
	got := make(chan []string, 1)
	go func() {
		for batch := range w.Changes() {
			got <- batch
			return
		}
	}()
	select {
	case batch := <-got:
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	t.Parallel()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "function"), 0o750))

	w, err := watcher.NewWatcher(log, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	require.NoError(t, w.Start(context.Background(), root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "function", "handler.py"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cached.pyc"), []byte("x"), 0o600))

	batch := nextBatch(t, w)
	assert.Contains(t, batch, filepath.Join(root, "function", "handler.py"))
	assert.NotContains(t, batch, filepath.Join(root, "cached.pyc"))
}

func TestWatcher_StopEndsChanges(t *testing.T) {
	t.Parallel()
	log := mocks.NewMockLogger(gomock.NewController(t))

	w, err := watcher.NewWatcher(log, time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), t.TempDir()))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	for range w.Changes() {
		t.Fatal("unexpected batch after stop")
	}
}
