package config

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Editors often emit
// several events per save, so reloads are debounced.
type Watcher struct {
	path    string
	logger  *slog.Logger
	fsw     *fsnotify.Watcher
	done    chan struct{}
	onLoad  func(*Config)
	trigger func(func())
}

// Watch starts watching path. onLoad is called from a background goroutine
// with each successfully parsed config; callers marshal it onto the UI thread.
func Watch(path string, logger *slog.Logger, onLoad func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so atomic rename-on-save is still observed.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:    path,
		logger:  logger,
		fsw:     fsw,
		done:    make(chan struct{}),
		onLoad:  onLoad,
		trigger: debounce.New(reloadDebounce),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	target := filepath.Clean(w.path)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.trigger(w.reload)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error("config watch", "error", err)
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}
	cfg, err := Load(w.path)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("config reload failed", "path", w.path, "error", err)
		}
		return
	}
	if w.logger != nil {
		w.logger.Info("config reloaded", "path", w.path)
	}
	if w.onLoad != nil {
		w.onLoad(cfg)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsw.Close()
}
