// Package pkg provides the libraries behind labdoc, a lab report assembler.
//
// # Overview
//
// A lab runner writes output.json: one entry per exercise holding the
// question, the solution source, an optional RTF rendering of that source
// produced by a syntax highlighter, and the program output. labdoc turns
// the entries into a Word document laid out by a format file. Because the
// RTF rendering and the plain source can disagree (tabs expanded, lines
// wrapped, characters escaped), colors and emphasis are recovered by
// aligning tokens of the plain source against the RTF text instead of
// copying the RTF verbatim.
//
// # Architecture
//
//	output.json + format.toml
//	         ↓
//	    [io], [config] (load entries and the format)
//	         ↓
//	    [highlight] (optional: RTF for entries that have none)
//	         ↓
//	    [report] (one section per entry, in index order)
//	         ↓
//	    [core/render] (paragraphs; code formatting via [core/align])
//	         ↓
//	    [sink] (docx or json)
//
// # Main Packages
//
// [core/rtf] decodes the RTF subset highlighters emit into colored,
// emphasized text blocks. [core/token] splits source lines into words,
// numbers, punctuation, quotes and whitespace. [core/align] matches tokens
// against the decoded blocks, either with the fuzzy heuristic cascade or
// by walking both texts in lockstep. [core/template] expands the {n},
// {question}, {solution} and {output} placeholders.
//
// [doc] is the neutral document model the sinks write. [pipeline] runs
// the stages with caching and hooks and is shared by every command in
// cmd/labdoc.
//
// Infrastructure lives in [cache] (file, Redis and null highlight caches),
// [observability] (pipeline and cache hooks), [errors] (coded errors with
// user-facing messages) and [buildinfo].
//
// [core/rtf]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/core/rtf
// [core/token]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/core/token
// [core/align]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/core/align
// [core/template]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/core/template
// [core/render]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/core/render
// [io]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/config
// [highlight]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/highlight
// [report]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/report
// [sink]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/sink
// [doc]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/doc
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/labdoc/pkg/buildinfo
package pkg
