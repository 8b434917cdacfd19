package monitor

import (
	"context"
	"fmt"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/home-sentry/home-sentry/internal/logger"
)

// watchFrames feeds camera frames from a spool directory into the engine.
// Frames already present are processed first, then the directory is watched
// for new files. Producers should rename completed frames into the directory
// so a frame is never read half-written. Processed frames are deleted.
func watchFrames(ctx context.Context, svc *Service, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create frames directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err = processExistingFrames(ctx, svc, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Create) && isFrameFile(event.Name) {
				processFrameFile(ctx, svc, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Errorf(ctx, "Frame watcher error: %v", err)
		}
	}
}

// processExistingFrames drains frames that arrived before the watch started.
func processExistingFrames(ctx context.Context, svc *Service, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read frames directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !isFrameFile(entry.Name()) {
			continue
		}

		processFrameFile(ctx, svc, filepath.Join(dir, entry.Name()))
	}

	return nil
}

// processFrameFile decodes one frame and runs it through the engine. The file
// is deleted afterward, decodable or not, so a bad frame cannot wedge the spool.
func processFrameFile(ctx context.Context, svc *Service, path string) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Errorf(ctx, "Failed to remove frame %s: %v", path, err)
		}
	}()

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		logger.Errorf(ctx, "Failed to open frame %s: %v", path, err)

		return
	}
	defer file.Close()

	frame, _, err := stdimage.Decode(file)
	if err != nil {
		logger.WarnKV(ctx, "Skipping undecodable frame", "path", path, "error", err)

		return
	}

	if err = svc.ProcessImage(ctx, frame); err != nil {
		logger.Errorf(ctx, "Failed to process frame %s: %v", path, err)
	}
}

// isFrameFile reports whether the path looks like a camera frame.
func isFrameFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
