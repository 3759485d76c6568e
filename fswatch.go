package main

import (
	"context"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/fsnotify.v1"
)

// watchTemplate recompiles the template when its file changes on disk and
// signals the returned channel so the watch loop re-renders without
// waiting out the interval. Editors often replace files by rename, so the
// parent directory is watched rather than the file itself.
func watchTemplate(ctx context.Context, tpl *handlebarsTemplate) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(tpl.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-watcher.Events:
				if filepath.Clean(event.Name) != filepath.Clean(tpl.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.Debugf("template event: %v", event)
				if err := tpl.Reload(); err != nil {
					log.Errorf("could not reload template: %v", err)
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err := <-watcher.Errors:
				log.Errorf("template watcher: %v", err)
			}
		}
	}()

	return changes, nil
}
