package align

import (
	"strings"

	"github.com/matzehuels/labdoc/pkg/core/rtf"
)

// Index maps token text found in a rich document to its formatting.
// Keys keep first-insertion order so scans are deterministic; a later
// insertion of the same key replaces its format.
type Index struct {
	keys    []string
	formats map[string]rtf.Format
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{formats: make(map[string]rtf.Format)}
}

// Put inserts key or overwrites its format.
func (x *Index) Put(key string, f rtf.Format) {
	if _, ok := x.formats[key]; !ok {
		x.keys = append(x.keys, key)
	}
	x.formats[key] = f
}

// Get returns the format stored under key.
func (x *Index) Get(key string) (rtf.Format, bool) {
	f, ok := x.formats[key]
	return f, ok
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (x *Index) Keys() []string { return x.keys }

// Len returns the number of keys.
func (x *Index) Len() int { return len(x.keys) }

// isIndexBoundary reports whether c separates sub-tokens of a rich block.
func isIndexBoundary(c rune) bool {
	switch c {
	case ' ', '\t', '(', ')', '{', '}', '[', ']', ';', ',', '.':
		return true
	}
	return false
}

// BuildIndex collects every token of doc into an [Index].
//
// Each block's text has carriage returns removed and line feeds turned into
// spaces. The text is split on whitespace and the punctuation set
// ( ) { } [ ] ; , . so that every non-blank piece becomes a key, every
// punctuation character becomes a key of its own, and finally the whole
// trimmed block text is added so compound lexemes can match too. Blank
// blocks contribute nothing.
func BuildIndex(doc *rtf.Document) *Index {
	idx := NewIndex()
	if doc == nil {
		return idx
	}

	for _, blk := range doc.Blocks {
		text := strings.ReplaceAll(blk.Text, "\r", "")
		text = strings.ReplaceAll(text, "\n", " ")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		var cur strings.Builder
		for _, c := range text {
			if !isIndexBoundary(c) {
				cur.WriteRune(c)
				continue
			}
			if piece := cur.String(); strings.TrimSpace(piece) != "" {
				idx.Put(piece, blk.Format)
			}
			cur.Reset()
			if c != ' ' && c != '\t' {
				idx.Put(string(c), blk.Format)
			}
		}
		if piece := cur.String(); strings.TrimSpace(piece) != "" {
			idx.Put(piece, blk.Format)
		}

		idx.Put(trimmed, blk.Format)
	}
	return idx
}
