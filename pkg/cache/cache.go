// Package cache stores highlighted code between builds.
//
// Highlighting a solution with chroma is deterministic in the lexer, the
// style and the source text, so its RTF is cached under a key derived from
// all three. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under a directory, the CLI default
//   - [RedisCache]: a shared Redis instance, for build machines
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer] so that callers never build them by hand.
package cache

import (
	"context"
	"strings"
	"time"
)

// TTLHighlight is how long highlighted RTF stays cached.
const TTLHighlight = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer builds cache keys.
type Keyer interface {
	// HighlightKey is the key for code highlighted with the given lexer and style.
	HighlightKey(lexer, style, code string) string
}

// DefaultKeyer builds unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HighlightKey hashes the lexer, style and code into one key.
func (DefaultKeyer) HighlightKey(lexer, style, code string) string {
	return hashKey("highlight", lexer, style, code)
}

// keyType extracts the kind segment of a key for hook reporting.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
