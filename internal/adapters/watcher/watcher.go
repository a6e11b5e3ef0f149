package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"componentdiff/internal/domain"
)

const DefaultDebounce = 500 * time.Millisecond

// CorpusWatcher watches a corpus directory for *.xml changes and calls back
// once per burst of events
type CorpusWatcher struct {
	dir      string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a watcher for dir. A debounce of zero uses DefaultDebounce.
func New(dir string, debounce time.Duration, logger *zap.Logger) *CorpusWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CorpusWatcher{dir: dir, debounce: debounce, logger: logger}
}

// Run blocks until ctx is done. onChange runs on the watcher goroutine, so
// events arriving meanwhile are folded into the next call. An onChange error
// is logged and watching continues.
func (w *CorpusWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching corpus", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("corpus changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := onChange(ctx); err != nil {
				w.logger.Warn("refresh failed", zap.Error(err))
			}
		}
	}
}

// relevant keeps create, write, remove and rename of corpus documents
func relevant(event fsnotify.Event) bool {
	if !domain.IsDocumentFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
