package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of file events into one rebuild.
const watchDebounce = 100 * time.Millisecond

// watchAndCompile recompiles job whenever a watched source changes. It
// returns when ctx is cancelled or the process receives SIGINT or SIGTERM.
func watchAndCompile(ctx context.Context, job *compileJob, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := watchDirs(args)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	r := job.cc.Renderer
	r.Muted(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", strings.Join(dirs, ", ")))

	return watchLoop(ctx, watcher, job, args)
}

// watchDirs returns the directories holding the inputs. Directory arguments
// are watched with all their subdirectories.
func watchDirs(args []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(arg))
			continue
		}
		_ = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if path != arg && len(d.Name()) > 0 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
	}
	return dirs
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, job *compileJob, args []string) error {
	var debounceTimer *time.Timer
	rebuild := make(chan string, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			job.cc.Renderer.Muted("Stopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only handle write/create events for sources
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != SourceExt {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case rebuild <- name:
				default:
				}
			})

		case name := <-rebuild:
			job.cc.Logger.Debug("change detected", "file", name)
			job.cc.Renderer.Muted("Change detected: " + filepath.Base(name))

			// New files in watched directories are picked up on rebuild.
			inputs, err := collectInputs(args)
			if err != nil {
				job.cc.Renderer.Error(err.Error())
				continue
			}
			job.inputs = inputs
			if _, err := job.run(ctx); err != nil {
				job.cc.Renderer.Error("Rebuild error: " + err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			job.cc.Logger.Warn("watcher error", "error", err)
		}
	}
}
