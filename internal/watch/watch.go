// Package watch re-runs a callback when plotfiles change on disk. Events
// are debounced so editor save bursts trigger a single re-render.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nervecenter/gnuplotgo/internal/ctxlog"
	"github.com/nervecenter/gnuplotgo/internal/plotfile"
)

// DefaultDebounce is the quiet period required after the last change before
// the callback fires.
const DefaultDebounce = 250 * time.Millisecond

// Run watches the given paths until ctx is cancelled, invoking fn after
// each debounced batch of changes. Paths may be plotfiles or directories;
// directories are watched with their existing subdirectories (directories
// created while watching are not picked up). Missing paths are skipped.
func Run(ctx context.Context, paths []string, debounce time.Duration, fn func(context.Context)) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	filter, err := addTargets(watcher, paths)
	if err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// The timer starts stopped; only a matching event arms it.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger.Info("👀 Watching for plotfile changes", "paths", len(paths), "debounce", debounce.String())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !filter.matches(event) {
				continue
			}
			logger.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)

		case <-timer.C:
			fn(ctx)
		}
	}
}

// targetFilter decides which filesystem events are worth a re-render.
type targetFilter struct {
	// files holds exact plotfile paths watched through their parent dirs.
	files map[string]struct{}
	// dirs holds watched directory roots; any plotfile under one matches.
	dirs []string
}

// addTargets registers watch targets and builds the matching filter. Files
// are watched through their parent directory because editors often replace
// the file on save, which would drop a direct watch.
func addTargets(w *fsnotify.Watcher, paths []string) (*targetFilter, error) {
	filter := &targetFilter{files: make(map[string]struct{})}
	watched := make(map[string]struct{})

	add := func(dir string) error {
		if _, wasSeen := watched[dir]; wasSeen {
			return nil
		}
		watched[dir] = struct{}{}
		return w.Add(dir)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("accessing watch path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					filter.dirs = append(filter.dirs, p)
					return add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			filter.files[path] = struct{}{}
			if err := add(filepath.Dir(path)); err != nil {
				return nil, err
			}
		}
	}
	return filter, nil
}

// matches reports whether the event touches a watched plotfile with an
// operation that changes its content.
func (f *targetFilter) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if _, ok := f.files[event.Name]; ok {
		return true
	}
	if !strings.HasSuffix(event.Name, plotfile.Extension) {
		return false
	}
	for _, dir := range f.dirs {
		if strings.HasPrefix(event.Name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
