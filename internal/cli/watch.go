package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/errors"
	pkgio "github.com/matzehuels/labdoc/pkg/io"
	"github.com/matzehuels/labdoc/pkg/pipeline"
)

// watchDebounce collapses the burst of events a single save produces.
const watchDebounce = 200 * time.Millisecond

// watch builds once and then again after every change to the entry file
// or the format file, until ctx is canceled. Build failures are reported
// and do not end the loop.
func (c *CLI) watch(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start watcher")
	}
	defer w.Close()

	names := watchedNames(opts)
	for _, dir := range watchedDirs(opts) {
		if err := w.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
		}
	}

	build := func() {
		if _, err := os.Stat(filepath.Join(opts.Dir, pkgio.EntryFile)); err != nil {
			printWarning("Waiting for %s", pkgio.EntryFile)
			return
		}
		if err := c.runBuild(ctx, runner, opts); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	}

	build()
	printInfo("Watching %s", opts.Dir)

	var (
		timer *time.Timer
		fire  <-chan time.Time
		spin  = newSpinner(ctx, os.Stderr, "Waiting for changes...")
	)
	spin.Start()
	defer func() { spin.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isRelevant(ev, names) {
				continue
			}
			c.Logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			spin.Stop()
			build()
			spin = newSpinner(ctx, os.Stderr, "Waiting for changes...")
			spin.Start()
		}
	}
}

// watchedNames returns the base names whose changes trigger a rebuild.
func watchedNames(opts pipeline.Options) map[string]bool {
	names := map[string]bool{pkgio.EntryFile: true}
	if opts.ConfigPath != "" {
		names[filepath.Base(opts.ConfigPath)] = true
		return names
	}
	for _, n := range config.FileNames {
		names[n] = true
	}
	return names
}

// watchedDirs returns the directories to watch: the report directory and,
// when the format file lives elsewhere, its directory.
func watchedDirs(opts pipeline.Options) []string {
	dirs := []string{opts.Dir}
	if opts.ConfigPath != "" {
		if d := filepath.Dir(opts.ConfigPath); filepath.Clean(d) != filepath.Clean(opts.Dir) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// isRelevant reports whether ev creates or writes one of names.
func isRelevant(ev fsnotify.Event, names map[string]bool) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return names[filepath.Base(ev.Name)]
}
