// Package rtf decodes the subset of Rich Text Format emitted by syntax
// highlighters into an ordered list of formatted text blocks.
//
// # Overview
//
// Highlighters (IDE "copy as RTF", pygments, chroma via [highlight.RTF])
// encode each lexeme as a group carrying bold, italic, underline and a
// foreground color reference:
//
//	{\rtf1\ansi{\colortbl;\red0\green0\blue255;}
//	{\cf1\b public} {\cf1\b class} Main \{\par
//	}
//
// [Decode] flattens that into a [Document]: a slice of [Block] values in
// document order, each holding text and the [Format] active when it was
// written, plus the [ColorTable] the color references point into.
//
// Consecutive characters with identical formatting are merged into one
// block. Paragraph and line marks (\par, \line) become "\n", \tab becomes
// "\t". Font tables, stylesheets, info groups, pictures and every
// "{\*...}" destination are skipped.
//
// # Colors
//
// Color references are kept as indexes, never resolved during decoding.
// Callers resolve them in a second step with [ColorTable.Lookup], so a
// decoded document can be dropped as soon as its runs are built. Index 0 is
// the RTF "auto" color and is never present in the table.
//
// # Errors
//
// Input that does not start with "{\rtf", has unbalanced braces, a dangling
// backslash or a bad hex escape is rejected with an error wrapping
// [ErrMalformed].
package rtf
