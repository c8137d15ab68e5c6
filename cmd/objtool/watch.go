package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/internal/model"
)

func cmdWatch(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool watch <file.obj>")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	return watchMesh(ctx, path, time.Duration(cfg.Watch.Debounce))
}

// watchMesh reloads the mesh whenever it or one of its material libraries
// changes, until ctx is done. Directories are watched instead of files so
// that editors replacing files on save are picked up.
func watchMesh(ctx context.Context, path string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	m := model.New(model.LoadOptions{Encoding: cfg.Loader.Encoding})
	watched := make(map[string]bool) // files that trigger a reload
	dirs := make(map[string]bool)

	reload := func() {
		if err := m.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			printSummary(m)
		}
		fmt.Println()

		files := append([]string{path}, m.MaterialLibraries()...)
		for _, f := range files {
			f = filepath.Clean(f)
			watched[f] = true
			dir := filepath.Dir(f)
			if dirs[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
				continue
			}
			dirs[dir] = true
		}
	}

	reload()
	logger.Info("watching mesh", zap.String("path", path), zap.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("mesh changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			reload()
		}
	}
}
