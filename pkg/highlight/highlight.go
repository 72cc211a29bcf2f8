// Package highlight produces RTF for solutions that arrive without it.
//
// Entries in output.json normally carry the RTF an editor exported next to
// the plain code. When that is missing, a [Highlighter] runs the code
// through a chroma lexer and the [RTF] formatter, so the document builder
// can recover formatting the same way it does for exported RTF.
package highlight

import (
	"bytes"
	"context"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/labdoc/pkg/cache"
	"github.com/matzehuels/labdoc/pkg/errors"
)

// Highlighter turns source code into RTF using one chroma style.
// It is safe for concurrent use when its cache is.
type Highlighter struct {
	style     *chroma.Style
	styleName string
	cache     cache.Cache
	keyer     cache.Keyer
	logger    *log.Logger
}

// Option configures a [Highlighter].
type Option func(*Highlighter)

// WithCache stores highlighted RTF in c under keys from k.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(h *Highlighter) {
		h.cache = c
		if k != nil {
			h.keyer = k
		}
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(h *Highlighter) { h.logger = l }
}

// New creates a highlighter for the named chroma style.
// Unknown style names return an INVALID_CONFIG error.
func New(style string, opts ...Option) (*Highlighter, error) {
	s, ok := styles.Registry[style]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown highlight style %q", style)
	}
	h := &Highlighter{
		style:     s,
		styleName: style,
		cache:     cache.NewNullCache(),
		keyer:     cache.NewDefaultKeyer(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Lexer picks a lexer for a file extension (without the dot). It tries the
// extension as a filename suffix, then as a lexer name or alias, then
// content analysis of code, and finally falls back to plain text.
// Extensions that are not plain file suffixes are ignored.
func Lexer(ext, code string) chroma.Lexer {
	var l chroma.Lexer
	if ext != "" && errors.ValidateExtension(ext) == nil {
		l = lexers.Match("x." + ext)
		if l == nil {
			l = lexers.Get(ext)
		}
	}
	if l == nil {
		l = lexers.Analyse(code)
	}
	if l == nil {
		l = lexers.Get("plaintext")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Highlight returns code as RTF, lexed according to ext.
// Cache failures are logged and otherwise ignored.
func (h *Highlighter) Highlight(ctx context.Context, ext, code string) (string, error) {
	lexer := Lexer(ext, code)
	key := h.keyer.HighlightKey(lexer.Config().Name, h.styleName, code)

	if data, ok, err := h.cache.Get(ctx, key); err != nil {
		h.logger.Debug("highlight cache read failed", "error", err)
	} else if ok {
		return string(data), nil
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "tokenise %s", lexer.Config().Name)
	}
	var buf bytes.Buffer
	if err := RTF.Format(&buf, h.style, it); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "format rtf")
	}

	if err := h.cache.Set(ctx, key, buf.Bytes(), cache.TTLHighlight); err != nil {
		h.logger.Debug("highlight cache write failed", "error", err)
	}
	return buf.String(), nil
}

// Style returns the name of the chroma style in use.
func (h *Highlighter) Style() string { return h.styleName }
