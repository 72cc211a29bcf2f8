package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labdoc/pkg/buildinfo"
	"github.com/matzehuels/labdoc/pkg/cache"
	"github.com/matzehuels/labdoc/pkg/errors"
	"github.com/matzehuels/labdoc/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "labdoc"

	// envCacheDir overrides the file cache directory.
	envCacheDir = "LABDOC_CACHE_DIR"

	// envRedisURL selects a Redis highlight cache.
	envRedisURL = "LABDOC_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "labdoc",
		Short: "labdoc assembles lab reports into Word documents",
		Long: `labdoc turns the output.json written by a lab runner into a formatted
Word document: one section per exercise with the question, the solution
with its syntax highlighting and the program output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Selection
// =============================================================================

// cacheFlags selects the highlight cache backend.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the highlight cache")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "Redis cache URL (default $"+envRedisURL+")")
}

// openCache returns the cache selected by f: none, Redis when a URL is
// given, otherwise the file cache. A file cache that cannot be created
// degrades to no cache.
func (c *CLI) openCache(ctx context.Context, f cacheFlags) (cache.Cache, cache.Keyer, error) {
	if f.noCache {
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	}

	url := f.url
	if url == "" {
		url = os.Getenv(envRedisURL)
	}
	if url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to cache")
		}
		c.Logger.Debug("using redis cache")
		return cache.Instrument(rc), cache.NewScopedKeyer(nil, cache.RedisPrefix), nil
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return cache.Instrument(fc), cache.NewDefaultKeyer(), nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	ch, keyer, err := c.openCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $LABDOC_CACHE_DIR, or the XDG cache directory
// (~/.cache/labdoc on Linux).
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir, nil
	}
	if xdg.CacheHome == "" {
		return "", fmt.Errorf("no user cache directory")
	}
	return filepath.Join(xdg.CacheHome, appName), nil
}

// resolveDir maps the report directory argument to an absolute path.
// Relative paths are taken relative to the home directory, so that
// "labdoc build labs/week3" works from anywhere. No argument means the
// working directory.
func resolveDir(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return os.Getwd()
	}
	if filepath.IsAbs(args[0]) {
		return filepath.Clean(args[0]), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", args[0])
	}
	return filepath.Join(home, args[0]), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatDOCX}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
