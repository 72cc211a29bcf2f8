package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/labdoc/pkg/cache"
	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/core/render"
	"github.com/matzehuels/labdoc/pkg/errors"
	"github.com/matzehuels/labdoc/pkg/highlight"
	"github.com/matzehuels/labdoc/pkg/observability"
	"github.com/matzehuels/labdoc/pkg/report"
)

// Runner executes builds with a shared highlight cache.
//
// The Runner holds no per-build state; several goroutines may run builds
// for different directories with the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load, highlight, assemble and render, keeping the artifacts
// in memory.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	result := &Result{BuildID: uuid.NewString()}

	// Stage 1: Load
	start := time.Now()
	cfg, entries, err := Load(opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, opts.Dir, len(entries), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Config = cfg
	logger.Info("loaded entries",
		"entries", len(entries),
		"build", result.BuildID,
		"duration", result.Stats.LoadTime)

	// Stage 2: Highlight
	if cfg.Render.Highlight {
		start = time.Now()
		n, err := r.Highlight(ctx, cfg, entries)
		if err != nil {
			return nil, fmt.Errorf("highlight: %w", err)
		}
		result.Stats.Highlighted = n
		result.Stats.HighlightTime = time.Since(start)
		logger.Info("highlighted code",
			"entries", n,
			"style", cfg.Render.HighlightStyle,
			"duration", result.Stats.HighlightTime)
	}
	result.Entries = entries

	// Stage 3: Assemble
	start = time.Now()
	hooks.OnAssembleStart(ctx, len(entries))
	asm := report.NewAssembler(cfg,
		report.WithLogger(logger),
		report.WithEntryFunc(func(e report.Entry, paragraphs int, st render.Stats) {
			hooks.OnEntryRendered(ctx, e.Index, paragraphs, st.Rich)
		}),
	)
	d, stats, err := asm.AssembleContext(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Document = d
	result.Stats.Report = stats
	result.Stats.AssembleTime = time.Since(start)
	hooks.OnAssembleComplete(ctx, stats.Paragraphs, result.Stats.AssembleTime)

	logger.Info("assembled document",
		"entries", stats.Entries,
		"paragraphs", stats.Paragraphs,
		"rich", stats.RichBlocks,
		"plain", stats.PlainBlocks,
		"duration", result.Stats.AssembleTime)
	if stats.DecodeFailures > 0 {
		logger.Warn("some code blocks had unreadable RTF and were rendered plain", "count", stats.DecodeFailures)
	}

	// Stage 4: Render
	start = time.Now()
	artifacts, err := Render(d, result.BuildID, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build runs [Runner.Execute] and writes the artifacts into the report
// directory. output.json is removed afterwards unless opts.KeepInput is set.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = r.write(result, opts)
	result.Stats.WriteTime = time.Since(start)
	observability.Pipeline().OnWriteComplete(ctx, opts.Formats, result.Stats.WriteTime, err)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return result, nil
}

func (r *Runner) write(result *Result, opts Options) error {
	for _, format := range opts.Formats {
		path := opts.OutputPath(format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		result.Paths = append(result.Paths, path)
		opts.Logger.Debug("wrote artifact", "path", path, "bytes", len(result.Artifacts[format]))
	}

	if opts.KeepInput {
		return nil
	}
	if err := os.Remove(opts.InputPath()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove %s", opts.InputPath())
	}
	opts.Logger.Debug("removed input", "path", opts.InputPath())
	return nil
}

// Highlight fills in RTF for entries that have code but none of their own,
// using the style from cfg. It returns the number of entries highlighted.
func (r *Runner) Highlight(ctx context.Context, cfg *config.Config, entries []report.Entry) (int, error) {
	h, err := highlight.New(cfg.Render.HighlightStyle,
		highlight.WithCache(r.Cache, r.Keyer),
		highlight.WithLogger(r.Logger),
	)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range entries {
		e := &entries[i]
		if e.CodeRTF != nil || e.Code == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		out, err := h.Highlight(ctx, e.Extension, e.Code)
		if err != nil {
			return n, fmt.Errorf("entry %d: %w", e.Index+1, err)
		}
		e.CodeRTF = &out
		n++
	}
	return n, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
