package compiler

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the bursts of write events editors produce
// when saving a file.
const debounceDelay = 250 * time.Millisecond

// Watch blocks and re-runs regen whenever the vocabulary file changes.
// Regeneration failures are logged, not returned: the watch survives a
// temporarily broken vocabulary. Watch returns when the context is
// canceled or the watcher is closed.
func Watch(ctx context.Context, vocabPath string, regen func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(vocabPath)); err != nil {
		return err
	}

	target := filepath.Clean(vocabPath)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending = time.After(debounceDelay)
		case <-pending:
			pending = nil
			slog.Info("vocabulary changed, regenerating", slog.String("file", vocabPath))
			if err := regen(ctx); err != nil {
				slog.Error("regeneration failed", slog.Any("error", err))
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", slog.Any("error", werr))
		}
	}
}
