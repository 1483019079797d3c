package snapshotcache

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher feeds filesystem change events from one or more root directories
// into a debounced "dirty" signal on a Cache. It is an orthogonal capability:
// the cache functions correctly with no Watcher attached.
type Watcher struct {
	cache    *Cache
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	stop     chan struct{}
}

// NewWatcher creates a Watcher over dirs, debouncing bursts of events within
// debounce before invalidating cache.
func NewWatcher(cache *Cache, dirs []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			logger.Warn("snapshotcache: failed to watch root", "dir", d, "error", err)
		}
	}

	w := &Watcher{
		cache:    cache,
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			w.cache.MarkDirty()
			timer = nil
			fire = nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("snapshotcache: watch error", "error", err)

		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Close stops the watcher and releases its underlying fsnotify resources.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fsw.Close()
}
