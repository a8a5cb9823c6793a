package content

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// Logger is the subset of echo.Logger the watcher needs.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Watcher reloads a Catalog when its content file changes on disk. Editors
// often replace files via rename, so the parent directory is watched.
type Watcher struct {
	watcher  *fsnotify.Watcher
	catalog  *Catalog
	path     string
	log      Logger
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
	reloaded  chan struct{}
}

// NewWatcher starts watching the catalog's backing file.
func NewWatcher(c *Catalog, log Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path := filepath.Clean(c.Path())
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		catalog:  c,
		path:     path,
		log:      log,
		debounce: watchDebounce,
		reloaded: make(chan struct{}, 1),
	}, nil
}

// Reloaded is signalled after each reload attempt.
func (w *Watcher) Reloaded() <-chan struct{} { return w.reloaded }

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return w.Close()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("content watcher: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	if err := w.catalog.Reload(); err != nil {
		w.log.Errorf("content reload failed, keeping previous content: %v", err)
	} else {
		w.log.Infof("content reloaded from %s", w.path)
	}
	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
