package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const configDebounce = 200 * time.Millisecond

// ConfigWatcher reloads the config file whenever it changes on disk.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     zerolog.Logger
	onLoad  func(*Config)

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// WatchConfig calls onLoad with the freshly parsed config after each change
// to path. The parent directory is watched so editors that save by rename
// are still seen. Unparsable files are logged and skipped.
func WatchConfig(path string, log zerolog.Logger, onLoad func(*Config)) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	cw := &ConfigWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		log:     log,
		onLoad:  onLoad,
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// Close stops watching.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done

	cw.mu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.mu.Unlock()
	return err
}

func (cw *ConfigWatcher) loop() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				cw.schedule()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn().Err(err).Msg("config watcher")
		}
	}
}

// schedule coalesces a burst of events into one reload.
func (cw *ConfigWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(configDebounce, cw.reload)
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfigFrom(cw.path)
	if err != nil {
		cw.log.Warn().Err(err).Str("path", cw.path).Msg("config reload skipped")
		return
	}
	cw.log.Info().Str("path", cw.path).Msg("config reloaded")
	cw.onLoad(cfg)
}
