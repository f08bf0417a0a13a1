package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file whenever it changes on disk and hands the
// result to onReload from a background goroutine. The caller is responsible
// for marshaling the callback onto its own event loop. The returned stop
// function closes the watcher.
func Watch(onReload func(*Config)) (func(), error) {
	path := ConfigPath()
	if path == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace settings files by
	// rename, which silently drops a watch held on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := Load()
				if err != nil {
					continue
				}
				onReload(cfg)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
