package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/lizual/lizual/engine/core"
)

// LoaderFunc parses the file at path into a fresh configuration.
type LoaderFunc func(fs afero.Fs, path string) (*Config, error)

// Watcher reloads a configuration file whenever it is written or recreated.
type Watcher struct {
	fs   afero.Fs
	load LoaderFunc
}

func NewWatcher(fs afero.Fs, load LoaderFunc) *Watcher {
	if load == nil {
		load = Load
	}
	return &Watcher{fs: fs, load: load}
}

// Watch blocks until ctx is cancelled. Editors often replace files instead of
// writing them in place, so the parent directory is watched and events are
// filtered by name. A reload that fails to parse is logged and the previous
// configuration stays in effect.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	core.LogDebug("watching config file %s", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event, abs, path, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			core.LogError("config watcher error: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, abs, path string, onChange func(*Config)) {
	if filepath.Clean(event.Name) != abs {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	cfg, err := w.load(w.fs, path)
	if err != nil {
		core.LogError("failed to reload config: %s", err)
		return
	}
	core.LogInfo("config reloaded from %s", path)
	onChange(cfg)
}
