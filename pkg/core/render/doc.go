// Package render turns entry text into [doc.Paragraph] values, one
// paragraph per source line.
//
// # Code blocks
//
// [Builder.Code] tokenizes every raw line, finds each token's formatting in
// the decoded RTF (through [align.Aligner] or, with the stream strategy,
// [align.Stream]), resolves color references with [ResolveFormat] and emits
// one run per token in the fixed code font. Two guarantees hold for every
// input:
//
//   - the paragraph count equals the raw line count, and an empty string
//     is one line;
//   - the runs of a paragraph concatenate to exactly the raw line, whatever
//     formatting was or was not recovered.
//
// # Fallback
//
// [Builder.Solution] wraps [Builder.Code]: when the body template has no
// {solution} placeholder, when no RTF is available, or when the RTF does not
// decode, it emits the substituted template through [Builder.Plain] using the
// section's own attributes. Decode failures are reported in [Stats] and
// logged at debug level, never returned.
package render
