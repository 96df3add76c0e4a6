package store

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lattice-kg/lattice/pkg/logger"
)

type pathSource interface {
	Path() string
}

type dirSource interface {
	Dir() string
}

// Watch reloads the registry whenever a file-backed source changes on disk.
// Change bursts (editors write, rename, chmod) are debounced so one save
// triggers one reload. Sources without a filesystem location are ignored.
//
// Watch blocks until the context is canceled. It returns immediately when
// none of the registry's sources are file-backed.
func Watch(ctx context.Context, r *Registry, debounce time.Duration) error {
	watched := []string{}
	for _, source := range r.sources {
		switch s := source.(type) {
		case pathSource:
			watched = append(watched, s.Path())
		case dirSource:
			watched = append(watched, s.Dir())
		}
	}
	if len(watched) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range watched {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	logger.Info("[Watcher] watching graph sources", "paths", len(watched))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("[Watcher] watch error", "err", err)

		case <-timer.C:
			logger.Info("[Watcher] graph sources changed, reloading")
			if err := r.Reload(ctx); err != nil {
				logger.Error("[Watcher] reload failed, keeping current graphs", "err", err)
			}
		}
	}
}
