// Package watch reloads an open dataset when its files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/numex-dev/numex/internal/logger"
)

// DefaultDebounce is the quiet period after the last write before a
// reload fires. Writers that stream a large array emit many events; the
// debounce collapses them into one reload once the file settles.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes a fixed set of files and invokes a callback once they
// stop changing. Paths sharing a directory share one directory watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	targets   map[string]struct{}
	debounce  time.Duration
	onReload  func()
	log       logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New builds a watcher for the given files. Every path must name a file,
// not a directory; the parent directories are what actually get watched.
func New(paths []string, debounce time.Duration, log logger.Logger, onReload func()) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = &logger.Nop{}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		targets:   make(map[string]struct{}, len(paths)),
		debounce:  debounce,
		onReload:  onReload,
		log:       log,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("resolve path %q: %w", p, err)
		}
		w.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watch directory %q: %w", dir, err)
		}
	}

	return w, nil
}

// Start begins delivering reloads. Starting a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.running = true
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.handleEvents()

	w.log.Debug("file watcher started", map[string]interface{}{
		"targets":  len(w.targets),
		"debounce": w.debounce.String(),
	})
	return nil
}

func (w *Watcher) handleEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.targets[abs]; !watched {
				continue
			}

			w.log.Debug("dataset changed on disk", map[string]interface{}{
				"path": abs,
				"op":   event.Op.String(),
			})
			w.bump()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warning("file watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// bump restarts the debounce window; the reload fires once no further
// events arrive within it.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running && w.onReload != nil {
			w.onReload()
		}
	})
}

// Stop ends event delivery and releases the watcher. Stopping a stopped
// watcher is a no-op.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.cancel()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.log.Debug("file watcher stopped", nil)
	return w.fsWatcher.Close()
}
