package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/doodle"
)

// fileWatcher calls onChange whenever one file is written or replaced.
type fileWatcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

// watchFile watches the directory holding path, so editors that save by
// renaming a temp file over the original are still seen.
func watchFile(path string, onChange func()) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}

	fw := &fileWatcher{w: w, done: make(chan struct{})}
	go func() {
		defer close(fw.done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				doodle.Logger().Warn("watch error", "err", err)
			}
		}
	}()
	return fw, nil
}

// Close stops watching and waits for the event goroutine to exit.
func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
