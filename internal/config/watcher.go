package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces bursts of file events into one reload: each
// event resets the timer, so only the trailing edge of a quiet window
// fires. Editors and atomic saves routinely emit several writes per save.
const reloadDebounce = 500 * time.Millisecond

// Watcher keeps a Config hot-reloaded from a file. Rapid successive
// writes within the debounce window collapse to exactly one reload of
// the final content.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu       sync.RWMutex
	current  *Config
	onReload []func(*Config)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewWatcher loads the initial config from path and begins watching it.
// Call Start to receive reloads and Stop to release the watcher.
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	// Watch the directory too: atomic saves replace the file by rename.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		log.Printf("config watcher: cannot watch directory of %s: %v", path, err)
	}

	return &Watcher{
		path:     path,
		fsw:      fsw,
		debounce: reloadDebounce,
		current:  cfg,
		stop:     make(chan struct{}),
	}, nil
}

// Start runs the watch loop in the background.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends the watch loop.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.fsw.Close()
	})
}

// Current returns the latest successfully loaded config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnReload registers a callback invoked after each successful reload.
// Register before Start.
func (w *Watcher) OnReload(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, fn)
}

func (w *Watcher) loop() {
	var timer *time.Timer

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("config reload failed, keeping current: %v", err)
		return
	}

	w.mu.Lock()
	w.current = cfg
	handlers := append([]func(*Config){}, w.onReload...)
	w.mu.Unlock()

	log.Printf("config reloaded from %s", w.path)
	for _, fn := range handlers {
		fn(cfg)
	}
}
