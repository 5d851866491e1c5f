package bus

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Watcher bridges external writes to the shared store file into the bus:
// when another process replaces the file, every key is announced so open
// views re-read. The watcher cannot tell which key changed, so it
// broadcasts all of them.
type Watcher struct {
	fsw    *fsnotify.Watcher
	bus    *Bus
	path   string
	keys   []string
	reload func() bool
	log    logger.Logger
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file survives the rename-based atomic writes the store
// uses. reload is invoked before publishing so subscribers read fresh data;
// it reports whether the file actually changed, which filters out the
// events raised by this process's own saves.
func NewWatcher(path string, keys []string, reload func() bool, b *Bus) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsw:    fsw,
		bus:    b,
		path:   path,
		keys:   keys,
		reload: reload,
		log:    logger.Get().Named("store-watcher"),
	}, nil
}

// Run processes filesystem events until ctx ends.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		_ = w.fsw.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			changed := true
			if w.reload != nil {
				changed = w.reload()
			}
			if !changed {
				continue
			}
			w.log.Debug(ctx, "store file changed externally", logger.String("path", ev.Name))
			for _, key := range w.keys {
				w.bus.Publish(Change{Key: key, External: true})
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "store watch error", logger.Error(err))
		}
	}
}
