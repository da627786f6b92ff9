// Package watcher reports changes to JavaScript sources under a project root
// as events.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Hactar-js/hactar-babel/internal/errors"
	"github.com/Hactar-js/hactar-babel/internal/event"
	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/paths"
)

// Watcher recursively watches a directory tree.
type Watcher struct {
	root       string
	ignore     []string
	extensions []string
}

// New returns a Watcher for root. Directories named in ignore are never
// watched, and only files whose extension is in extensions are reported.
// Nil slices mean paths.DefaultIgnore and paths.DefaultExtensions.
func New(root string, ignore, extensions []string) *Watcher {
	if ignore == nil {
		ignore = paths.DefaultIgnore()
	}
	if extensions == nil {
		extensions = paths.DefaultExtensions()
	}
	return &Watcher{root: root, ignore: ignore, extensions: extensions}
}

// Watch starts watching and returns a channel of events. The channel is
// closed when ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan event.Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}

	if _, err := w.addTree(fsw, w.root); err != nil {
		fsw.Close()
		return nil, err
	}

	out := make(chan event.Event)
	go w.run(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, out chan<- event.Event) {
	defer close(out)
	defer fsw.Close()

	logger := logging.FromContext(ctx)

	send := func(ev event.Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case fev, ok := <-fsw.Events:
			if !ok {
				return
			}
			logger.Log(ctx, logging.LevelTrace, "file system event", "op", fev.Op.String(), "path", fev.Name)

			if fev.Has(fsnotify.Create) {
				if info, err := os.Stat(fev.Name); err == nil && info.IsDir() {
					if paths.IsIgnored(w.root, fev.Name, w.ignore) {
						continue
					}
					// Files may land in a new directory before it is watched.
					files, err := w.addTree(fsw, fev.Name)
					if err != nil {
						logger.Warn("cannot watch directory", "path", fev.Name, "error", err)
					}
					for _, f := range files {
						if !send(event.Event{Kind: event.AddFile, Path: f}) {
							return
						}
					}
					continue
				}
			}

			if !paths.HasExtension(fev.Name, w.extensions) || paths.IsIgnored(w.root, fev.Name, w.ignore) {
				continue
			}
			if !send(event.Event{Kind: kindOf(fev.Op), Path: fev.Name}) {
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}

// addTree watches dir and every non-ignored directory below it, returning
// the source files found along the way.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && paths.IsIgnored(w.root, path, w.ignore) {
				return filepath.SkipDir
			}
			if err := fsw.Add(path); err != nil {
				return errors.Wrapf(err, "watching %s", path)
			}
			return nil
		}
		if paths.HasExtension(path, w.extensions) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func kindOf(op fsnotify.Op) event.Kind {
	switch {
	case op.Has(fsnotify.Create):
		return event.AddFile
	case op.Has(fsnotify.Write):
		return event.ChangedFile
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return event.RemoveFile
	default:
		return event.Other
	}
}
