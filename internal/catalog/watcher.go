package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a catalog file for changes and reloads it. Rapid
// successive writes (editor save bursts) are coalesced; a reload that fails
// to parse keeps the last good catalog in place.
type Watcher struct {
	mu      sync.RWMutex
	watcher *fsnotify.Watcher
	path    string
	current *Catalog
	onLoad  func(*Catalog)
	logger  *zap.Logger

	debounce time.Duration
	pending  time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a Watcher for the catalog file at path. initial is the
// catalog to serve until the first successful reload. onLoad is invoked with
// every successfully reloaded catalog; it may be nil.
func NewWatcher(path string, initial *Catalog, onLoad func(*Catalog), logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		path:     path,
		current:  initial,
		onLoad:   onLoad,
		logger:   logger,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Current returns the most recently loaded catalog.
func (w *Watcher) Current() *Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory, not the file: editors replace files on save and
	// the watch would be lost with the old inode.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("catalog watcher started", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("catalog watcher close", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("catalog watcher event", zap.Error(err))

		case <-ticker.C:
			w.reloadIfSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// reloadIfSettled reloads the file once no new write has arrived for the
// debounce window.
func (w *Watcher) reloadIfSettled() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	loaded, err := Load(w.path)
	if err != nil {
		// Keep serving the last good catalog.
		w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = loaded
	cb := w.onLoad
	w.mu.Unlock()

	w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("products", loaded.Len()))
	if cb != nil {
		cb(loaded)
	}
}
