package confloader

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/hublink-go/internal/telemetry/logger"
)

// Watcher watches configuration files for changes.
//
// It watches the parent directory so editors that replace files by rename
// are still seen, and reports only the files registered with Watch.
type Watcher struct {
	watcher   *fsnotify.Watcher
	logger    logger.Logger
	debounce  time.Duration
	mu        sync.RWMutex
	files     map[string]struct{}
	callbacks []func(string)
	last      map[string]time.Time
	done      chan struct{}
	stopOnce  sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithDebounce drops repeat events for the same file closer together than d.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a new configuration file watcher.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		logger:   logger.Default(),
		debounce: 200 * time.Millisecond,
		files:    make(map[string]struct{}),
		last:     make(map[string]time.Time),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch registers a file. Its directory must exist.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error("failed to watch directory", "path", dir, "error", err)
		return err
	}

	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()

	w.logger.Debug("watching file for changes", "file", abs)
	return nil
}

// OnChange registers a callback invoked with the path of a changed file.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start processes events until Stop is called.
func (w *Watcher) Start() {
	w.logger.Info("configuration watcher started")

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if path, ok := w.accept(event.Name); ok {
				w.logger.Debug("configuration file changed", "file", path, "op", event.Op.String())
				w.notify(path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("configuration watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.logger.Info("configuration watcher stopped")
	})
	return err
}

// accept reports whether name is a watched file outside its debounce window.
func (w *Watcher) accept(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return "", false
	}
	now := time.Now()
	if now.Sub(w.last[abs]) < w.debounce {
		return "", false
	}
	w.last[abs] = now
	return abs, true
}

func (w *Watcher) notify(path string) {
	w.mu.RLock()
	cbs := make([]func(string), len(w.callbacks))
	copy(cbs, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range cbs {
		cb(path)
	}
}
