// Package align recovers per-token formatting for plain source code from a
// highlighter's RTF rendering of the same code.
//
// # The problem
//
// The raw code is authoritative for content: every character must be
// emitted exactly once, in order. The RTF rendering is authoritative for
// formatting, but its blocks rarely line up with a naive tokenization of
// the raw text. Highlighters fuse keywords with neighbouring punctuation,
// keep whole string literals or dotted identifiers in one block, or drop
// whitespace.
//
// # Heuristic alignment
//
// [BuildIndex] turns the decoded document into an [Index] keyed by token
// text. [Aligner.Match] then looks up each raw token using a cascade that
// stops at the first hit:
//
//  1. exact key
//  2. case-insensitive key
//  3. keyword assist: a configured keyword found inside any key
//  4. string literal: any unused key that starts with a quote
//  5. compound identifier: an unused long key containing, or contained
//     in, a long alphabetic token
//
// Rules 4 and 5 record the key they consume in a [Used] set so one rich
// token is not attributed to two raw tokens. Keyword matches are exempt:
// several keywords may legitimately share one compound key. The caller owns
// the set and decides its lifetime, see [Scope].
//
// # Stream alignment
//
// [Stream] is the simpler alternative for highlighters that reproduce the
// input byte for byte: it replays the rich text character by character and
// gives up, emitting the remainder unformatted, at the first divergence.
package align
