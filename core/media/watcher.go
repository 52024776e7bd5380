package media

import (
	"io/fs"
	"os"
	"path/filepath"

	"AirFM/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher logs changes to the library so operators can see tracks appear
// and disappear without polling the catalog. It is purely observational:
// listings always rescan the filesystem, so the watcher maintains no
// state of its own.
type Watcher struct {
	lib  *Library
	fw   *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher starts watching the library root recursively. Close stops
// the watcher and releases its inotify resources.
func NewWatcher(lib *Library) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{lib: lib, fw: fw, done: make(chan struct{})}
	if err := w.watchTree(lib.Root()); err != nil {
		fw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

// watchTree registers dir and every directory below it.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("library watcher error", logger.ErrorField(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		// New directories must be watched before anything lands in them.
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.watchTree(ev.Name); err != nil {
				logger.Warn("failed to watch new directory",
					logger.String("dir", ev.Name),
					logger.ErrorField(err))
			}
			return
		}
	}

	if _, ok := guessAudioType(ev.Name); !ok {
		return
	}
	switch {
	case ev.Op.Has(fsnotify.Create):
		logger.Info("track added", logger.String("file", ev.Name))
	case ev.Op.Has(fsnotify.Remove):
		logger.Info("track removed", logger.String("file", ev.Name))
	case ev.Op.Has(fsnotify.Rename):
		logger.Info("track renamed away", logger.String("file", ev.Name))
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
