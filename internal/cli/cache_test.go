package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labdoc/pkg/cache"
	"github.com/matzehuels/labdoc/pkg/errors"
)

func TestCacheDirFromEnv(t *testing.T) {
	want := t.TempDir()
	t.Setenv(envCacheDir, want)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv(envCacheDir, "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestOpenCache(t *testing.T) {
	t.Setenv(envCacheDir, filepath.Join(t.TempDir(), "cache"))
	t.Setenv(envRedisURL, "")
	c := New(&bytes.Buffer{}, log.InfoLevel)
	ctx := context.Background()

	ch, _, err := c.openCache(ctx, cacheFlags{noCache: true})
	if err != nil {
		t.Fatalf("openCache(no-cache) error: %v", err)
	}
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("openCache(no-cache) = %T, want *cache.NullCache", ch)
	}

	ch, _, err = c.openCache(ctx, cacheFlags{})
	if err != nil {
		t.Fatalf("openCache() error: %v", err)
	}
	inst, ok := ch.(*cache.Instrumented)
	if !ok {
		t.Fatalf("openCache() = %T, want *cache.Instrumented", ch)
	}
	if _, ok := inst.Cache.(*cache.FileCache); !ok {
		t.Errorf("wrapped cache = %T, want *cache.FileCache", inst.Cache)
	}
	ch.Close()

	_, _, err = c.openCache(ctx, cacheFlags{url: "http://not-redis"})
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("openCache(bad url) error = %v, want NETWORK_ERROR", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	want := t.TempDir()
	t.Setenv(envCacheDir, want)

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}
