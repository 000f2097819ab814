package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/adapters/watcher"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) get() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches
}

func TestDebouncer_CoalescesAndDeduplicates(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/bench/function/storage.py")
		d.Add("/bench/handler.py")
		d.Add("/bench/handler.py")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.get(), 1)
		assert.Equal(t, []string{"/bench/function/storage.py", "/bench/handler.py"}, rec.get()[0])
	})
}

func TestDebouncer_WindowRestarts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/a")
		time.Sleep(60 * time.Millisecond)
		d.Add("/b")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.get())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Len(t, rec.get(), 1)
		assert.Equal(t, []string{"/a", "/b"}, rec.get()[0])
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(time.Hour, rec.record)

		d.Flush()
		assert.Empty(t, rec.get())

		d.Add("/a")
		d.Flush()
		require.Len(t, rec.get(), 1)

		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, rec.get(), 1)
	})
}
