package main

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/hholst80/flowdoc/internal/controller"
)

// watchDocument mirrors glow's own watchFile: it watches the
// directory containing the document fixture and, on every write or
// create of the document file itself, reloads it and drives
// Controller.ScheduleRerender + RunPendingRerender, the same reload
// shape glow uses to redrive reloadMsg (SPEC_FULL.md AMBIENT STACK).
// Events are not debounced. It runs until stop is closed.
func watchDocument(doc *jsonDocument, ctrl *controller.Controller, logger *log.Logger, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]struct{}{filepath.Dir(doc.path): {}}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Error("fsnotify: failed to watch dir", "dir", dir, "error", err)
			continue
		}
		logger.Info("fsnotify watching dir", "dir", dir)
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(doc.path) {
				continue
			}
			logger.Debug("fsnotify event", "file", event.Name, "op", event.Op)
			if err := doc.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			ctrl.ScheduleRerender()
			ctrl.RunPendingRerender(nil)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("fsnotify error", "error", err)
		}
	}
}
