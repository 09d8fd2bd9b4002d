package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors dir recursively and invokes rebuild after changes settle
// for the debounce interval. Newly created folders are watched as they
// appear. The skip folder, typically the build output inside dir, is left
// unwatched so builds do not trigger themselves. Watch blocks until ctx is
// done or the watcher fails.
func Watch(ctx context.Context, dir, skip string, debounce time.Duration, rebuild func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	skipAbs := ""
	if skip != "" {
		if skipAbs, err = filepath.Abs(skip); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}
	if err := addRecursive(w, dir, skipAbs); err != nil {
		return err
	}

	var (
		timer   = time.NewTimer(debounce)
		pending bool
	)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := addRecursive(w, event.Name, skipAbs); err != nil {
						log.Printf("watch: %s", err)
					}
				}
			}
			if !pending {
				pending = true
			} else if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %s", err)
		case <-timer.C:
			pending = false
			log.Print("Change detected, rebuilding")
			if err := rebuild(); err != nil {
				log.Printf("rebuild: %s", err)
			}
		}
	}
}

// addRecursive registers dir and its subfolders with the watcher,
// skipping hidden folders and the skip folder.
func addRecursive(w *fsnotify.Watcher, dir, skipAbs string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if skipAbs != "" {
			if abs, err := filepath.Abs(p); err == nil && abs == skipAbs {
				return fs.SkipDir
			}
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch: cannot add %q: %w", p, err)
		}
		return nil
	})
}

// ignored filters editor temp files and hidden paths out of change events.
func ignored(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
