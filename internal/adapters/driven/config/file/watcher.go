package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/logger"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes.
//
// The parent directory is watched so that editors replacing the file by
// rename are still noticed. Bursts of events are debounced into one reload.
type Watcher struct {
	store    *ConfigStore
	onChange func(domain.Config)
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for store.
func NewWatcher(store *ConfigStore, onChange func(domain.Config)) *Watcher {
	return &Watcher{
		store:    store,
		onChange: onChange,
		debounce: defaultDebounce,
	}
}

// Run blocks until ctx is cancelled. Invalid rewrites are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	path := filepath.Clean(w.store.Path())
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	logger.Debug("config watcher: watching %s", path)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	cfg, err := w.store.Load()
	if err != nil {
		logger.Warn("config watcher: ignoring invalid config: %v", err)
		return
	}
	logger.Info("config watcher: reloaded %s", w.store.Path())
	w.onChange(cfg)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
