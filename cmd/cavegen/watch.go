package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchConfig calls regenerate each time the file at path is written or
// replaced, until ctx is cancelled. Regeneration errors are logged, not fatal.
func watchConfig(ctx context.Context, path string, log *slog.Logger, regenerate func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors often save by renaming over the file.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching config", "path", abs)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("config changed", "op", ev.Op.String())
			if err := regenerate(); err != nil {
				log.Error("regenerate cave", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher", "error", err)
		}
	}
}
