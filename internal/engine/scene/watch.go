package scene

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// LayoutWatcher reloads a layout file whenever it changes on disk. The
// parent directory is watched so editors that replace the file by rename
// are still seen. Only the newest valid layout is kept for the consumer.
type LayoutWatcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	layouts chan *Layout
	done    chan struct{}
	wg      sync.WaitGroup
}

// WatchLayout starts watching path.
func WatchLayout(path string) (*LayoutWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching layout: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching layout: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching layout: %w", err)
	}

	w := &LayoutWatcher{
		path:    abs,
		log:     logger.Named("scene").With(zap.String("layout", abs)),
		watcher: fw,
		layouts: make(chan *Layout, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Layouts delivers each successfully reloaded layout.
func (w *LayoutWatcher) Layouts() <-chan *Layout {
	return w.layouts
}

func (w *LayoutWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("layout watch error", zap.Error(err))
		}
	}
}

func (w *LayoutWatcher) reload() {
	l, err := LoadLayout(w.path)
	if err != nil {
		// Editors often write in several steps; keep the last good layout.
		w.log.Debug("layout not reloaded", zap.Error(err))
		return
	}

	// Replace any layout the consumer has not picked up yet.
	select {
	case <-w.layouts:
	default:
	}
	select {
	case w.layouts <- l:
		w.log.Info("layout reloaded", zap.Int("placements", len(l.Placements)))
	default:
	}
}

// Close stops watching.
func (w *LayoutWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
