// Package doc defines the paragraph-stream model that report assembly
// produces and sinks serialize.
//
// A [Document] is an ordered list of named paragraph [Style] definitions
// plus an ordered list of [Paragraph] values. Each paragraph holds
// [Run] values, the smallest unit of styled text. The model carries only
// what a word processor needs to reproduce the report: run fonts, sizes,
// emphasis and colors, paragraph alignment, spacing and style id, and
// page breaks. It has no notion of pages, sections or layout.
//
// Sizes are half-points and spacing is twips, the units WordprocessingML
// uses, so sinks can write values through unchanged.
package doc

import "strings"

// Alignment is the horizontal alignment of a paragraph.
type Alignment string

// Supported alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// ParseAlignment maps a configuration value to an [Alignment].
// Matching is case-insensitive; unknown values fall back to [AlignLeft].
func ParseAlignment(s string) Alignment {
	switch Alignment(strings.ToLower(strings.TrimSpace(s))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	case AlignJustify:
		return AlignJustify
	}
	return AlignLeft
}

// BreakType is a break carried by a run.
type BreakType int

const (
	BreakNone BreakType = iota
	BreakPage
)

// RunStyle is the resolved character formatting of a run.
// Zero values mean "inherit from the paragraph style".
type RunStyle struct {
	Font      string
	Size      int // half-points
	Bold      bool
	Italic    bool
	Underline bool
	Color     string // six hex digits, no '#'
}

// Run is an atomic piece of styled text.
type Run struct {
	Text  string
	Style RunStyle
	Break BreakType
}

// Spacing holds paragraph spacing and indentation.
type Spacing struct {
	Before int     // twips
	After  int     // twips
	Line   float64 // line height multiple; 0 leaves the style default
	Indent int     // left indent, twips
}

// IsZero reports whether s leaves every property at its default.
func (s Spacing) IsZero() bool { return s == Spacing{} }

// Paragraph is one block of runs.
type Paragraph struct {
	Runs    []Run
	Align   Alignment
	StyleID string
	Spacing Spacing
}

// Text concatenates the text of all runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// HasPageBreak reports whether any run of p breaks the page.
func (p Paragraph) HasPageBreak() bool {
	for _, r := range p.Runs {
		if r.Break == BreakPage {
			return true
		}
	}
	return false
}

// Blank returns a separator paragraph holding one empty run.
func Blank() Paragraph {
	return Paragraph{Runs: []Run{{}}}
}

// PageBreak returns a paragraph whose only run is a page break.
func PageBreak() Paragraph {
	return Paragraph{Runs: []Run{{Break: BreakPage}}}
}

// Style is a named paragraph style definition.
type Style struct {
	ID   string
	Name string
}

// Document is the assembled report.
type Document struct {
	Styles     []Style
	Paragraphs []Paragraph
}

// Add appends paragraphs in order.
func (d *Document) Add(ps ...Paragraph) {
	d.Paragraphs = append(d.Paragraphs, ps...)
}

// Lines returns the text of every paragraph, in order.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		lines[i] = p.Text()
	}
	return lines
}

// PageBreaks counts the paragraphs that break the page.
func (d *Document) PageBreaks() int {
	n := 0
	for _, p := range d.Paragraphs {
		if p.HasPageBreak() {
			n++
		}
	}
	return n
}
