package viewer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher signals C when any watched shader file is written or
// replaced. Bursts of events collapse into one pending signal.
type ShaderWatcher struct {
	C chan struct{}

	watcher *fsnotify.Watcher
	files   map[string]struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchShaders watches the directories holding paths. Directories are
// watched instead of files so editors that save by rename are seen.
func WatchShaders(paths ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create shader watcher: %w", err)
	}

	sw := &ShaderWatcher{
		C:       make(chan struct{}, 1),
		watcher: w,
		files:   make(map[string]struct{}, len(paths)),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		sw.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, seen := dirs[dir]; seen {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer close(sw.done)
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, hit := sw.files[filepath.Clean(ev.Name)]; !hit {
				continue
			}
			slog.Debug("shader changed", "path", ev.Name, "op", ev.Op.String())
			select {
			case sw.C <- struct{}{}:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("shader watcher error", "err", err)
		}
	}
}

// Close stops watching. It may be called more than once.
func (sw *ShaderWatcher) Close() {
	sw.once.Do(func() {
		if err := sw.watcher.Close(); err != nil {
			slog.Warn("closing shader watcher", "err", err)
		}
		<-sw.done
	})
}
