// Package sink serializes an assembled [doc.Document].
//
// # Formats
//
//   - [RenderDOCX]: a WordprocessingML package (.docx) that Word,
//     LibreOffice and Google Docs open directly
//   - [RenderJSON]: the paragraph stream as JSON, for inspecting what the
//     assembler produced without opening a word processor
//
// Both renderers are pure functions of the document and their options and
// are safe to call concurrently.
package sink
