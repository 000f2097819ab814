package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	fsadapter "go.trai.ch/faasbench/internal/adapters/fs"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultWindow is the quiet period after which a batch of changes is reported.
const DefaultWindow = 300 * time.Millisecond

const changesBuffer = 8

var _ ports.Watcher = (*Watcher)(nil)

// Watcher watches a source tree with fsnotify. Ignored names follow
// fs.DefaultIgnores so build artifacts never trigger a redeploy.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	debouncer *Debouncer
	changes   chan []string

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewWatcher returns a watcher reporting batches coalesced over window.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	w := &Watcher{
		fsWatcher: fw,
		logger:    logger,
		changes:   make(chan []string, changesBuffer),
		done:      make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w, nil
}

// Start watches root and every directory below it. Events are processed until
// ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir, err := range directories(root) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", root)
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}
	go w.process(ctx)
	return nil
}

// Stop releases the watcher and ends Changes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.fsWatcher.Close()
	w.debouncer.Flush()
	return err
}

// Changes yields the batches of changed paths until the watcher stops.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			select {
			case <-w.done:
				return
			case batch := <-w.changes:
				if !yield(batch) {
					return
				}
			}
		}
	}
}

func (w *Watcher) emit(paths []string) {
	select {
	case w.changes <- paths:
	case <-w.done:
	}
}

func (w *Watcher) process(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if fsadapter.Ignored(filepath.Base(event.Name), nil) || event.Op == fsnotify.Chmod {
				continue
			}
			w.debouncer.Add(event.Name)

			if event.Op.Has(fsnotify.Create) {
				w.watchNew(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("watcher: %v", err))
		}
	}
}

func (w *Watcher) watchNew(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for dir, err := range directories(path) {
		if err != nil {
			return
		}
		_ = w.fsWatcher.Add(dir)
	}
}

// directories yields root and every directory below it that is not ignored.
func directories(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && fsadapter.Ignored(d.Name(), nil) {
				return filepath.SkipDir
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}
