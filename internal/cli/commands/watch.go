package commands

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
)

// debounceInterval coalesces bursts of filesystem events into one re-run.
const debounceInterval = 300 * time.Millisecond

// watchAndCheck runs a check, then re-runs it whenever files under the
// root change, until the context is cancelled. Watch mode always exits
// cleanly on interrupt; per-run pass/fail is rendered, not returned.
func watchAndCheck(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, opts *CheckOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, opts.Path); err != nil {
		return err
	}

	runOnce := func() {
		if _, err := executeCheck(ctx, cmdCtx, r, opts); err != nil {
			r.Error(err.Error())
		}
	}
	runOnce()
	r.Println("Watching for changes (ctrl-c to stop)...")

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need to be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				_ = watchTree(watcher, event.Name)
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", watchErr)
		case <-pending:
			runOnce()
			r.Println("Watching for changes (ctrl-c to stop)...")
		}
	}
}

// watchTree recursively adds root and its subdirectories to the watcher.
// Non-directories and unreadable entries are skipped.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(info, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != info && (name == ".git" || name == "node_modules" || name == ".venv" || name == "vendor") {
			return filepath.SkipDir
		}
		_ = watcher.Add(path)
		return nil
	})
}
