// Package config loads the report format file.
//
// The format file describes how each entry of a report is laid out: an
// optional header, the question, the solution and output sections (each
// with a title paragraph), an optional footer, the code font and the
// render options that control formatting recovery. It is read from
// format.toml, format.yml or format.yaml in the report directory.
//
// Every paragraph option has a default, so a file may set only text:
//
//	[question]
//	text = "Q{n}: {question}"
//
//	[solution]
//	text = "{solution}"
//	[solution.title]
//	text = "Solution"
//	bold = true
//
// Sizes, margins and indents are in points. Colors are hex with or without
// a leading '#'.
package config

import (
	"strings"

	"github.com/matzehuels/labdoc/pkg/core/align"
	"github.com/matzehuels/labdoc/pkg/core/render"
	"github.com/matzehuels/labdoc/pkg/doc"
)

// Paragraph defaults.
const (
	DefaultSize        = 12
	DefaultAlign       = "left"
	DefaultFont        = "Arial"
	DefaultColor       = "#000000"
	DefaultLineSpacing = 1.0
	DefaultStyle       = "Normal"
)

// DefaultCodeSize is the code font size in points.
const DefaultCodeSize = render.DefaultCodeSize / 2

// DefaultHighlightStyle is the chroma style used when highlighting is on.
const DefaultHighlightStyle = "github"

// Paragraph is a paragraph template and its plain formatting.
type Paragraph struct {
	Text         string  `toml:"text" yaml:"text"`
	Size         int     `toml:"size,omitempty" yaml:"size,omitempty"`
	Align        string  `toml:"align,omitempty" yaml:"align,omitempty"`
	Bold         bool    `toml:"bold,omitempty" yaml:"bold,omitempty"`
	Italic       bool    `toml:"italic,omitempty" yaml:"italic,omitempty"`
	Underline    bool    `toml:"underline,omitempty" yaml:"underline,omitempty"`
	Font         string  `toml:"font,omitempty" yaml:"font,omitempty"`
	Color        string  `toml:"color,omitempty" yaml:"color,omitempty"`
	LineSpacing  float64 `toml:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	MarginTop    float64 `toml:"margin_top,omitempty" yaml:"margin_top,omitempty"`
	MarginBottom float64 `toml:"margin_bottom,omitempty" yaml:"margin_bottom,omitempty"`
	Indent       float64 `toml:"indent,omitempty" yaml:"indent,omitempty"`
	Style        string  `toml:"style,omitempty" yaml:"style,omitempty"`
}

// Section is a titled body paragraph.
type Section struct {
	Paragraph `yaml:",inline"`
	Title     Paragraph `toml:"title" yaml:"title"`
}

// Code is the run style of code and program output.
type Code struct {
	Font string `toml:"font,omitempty" yaml:"font,omitempty"`
	Size int    `toml:"size,omitempty" yaml:"size,omitempty"` // points
}

// Render controls formatting recovery for code blocks.
type Render struct {
	Strategy       string   `toml:"strategy,omitempty" yaml:"strategy,omitempty"`
	UsedScope      string   `toml:"used_scope,omitempty" yaml:"used_scope,omitempty"`
	Keywords       []string `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Highlight      bool     `toml:"highlight,omitempty" yaml:"highlight,omitempty"`
	HighlightStyle string   `toml:"highlight_style,omitempty" yaml:"highlight_style,omitempty"`
}

// Config is a report format.
type Config struct {
	Header   *Paragraph `toml:"header,omitempty" yaml:"header,omitempty"`
	Question Paragraph  `toml:"question" yaml:"question"`
	Solution Section    `toml:"solution" yaml:"solution"`
	Output   Section    `toml:"output" yaml:"output"`
	Footer   *Paragraph `toml:"footer,omitempty" yaml:"footer,omitempty"`
	Code     Code       `toml:"code,omitempty" yaml:"code,omitempty"`
	Render   Render     `toml:"render,omitempty" yaml:"render,omitempty"`
}

// Default returns a complete format that produces a readable report.
func Default() *Config {
	cfg := &Config{
		Question: Paragraph{Text: "{n}. {question}", Bold: true},
		Solution: Section{
			Paragraph: Paragraph{Text: "{solution}"},
			Title:     Paragraph{Text: "Solution", Style: "Heading2"},
		},
		Output: Section{
			Paragraph: Paragraph{Text: "{output}"},
			Title:     Paragraph{Text: "Output", Style: "Heading2"},
		},
		Code: Code{Font: render.DefaultCodeFont, Size: DefaultCodeSize},
		Render: Render{
			Strategy:       string(align.Heuristic),
			UsedScope:      string(align.ScopeBlock),
			HighlightStyle: DefaultHighlightStyle,
		},
	}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset option with its default.
func (c *Config) SetDefaults() {
	if c.Header != nil {
		c.Header.SetDefaults()
	}
	c.Question.SetDefaults()
	c.Solution.SetDefaults()
	c.Solution.Title.SetDefaults()
	c.Output.SetDefaults()
	c.Output.Title.SetDefaults()
	if c.Footer != nil {
		c.Footer.SetDefaults()
	}
	if c.Code.Font == "" {
		c.Code.Font = render.DefaultCodeFont
	}
	if c.Code.Size == 0 {
		c.Code.Size = DefaultCodeSize
	}
	if c.Render.HighlightStyle == "" {
		c.Render.HighlightStyle = DefaultHighlightStyle
	}
}

// SetDefaults fills every unset option with its default.
func (p *Paragraph) SetDefaults() {
	if p.Size == 0 {
		p.Size = DefaultSize
	}
	if p.Align == "" {
		p.Align = DefaultAlign
	}
	if p.Font == "" {
		p.Font = DefaultFont
	}
	if p.Color == "" {
		p.Color = DefaultColor
	}
	if p.LineSpacing == 0 {
		p.LineSpacing = DefaultLineSpacing
	}
	if p.Style == "" {
		p.Style = DefaultStyle
	}
}

// Section converts p into the attributes the paragraph builder applies.
func (p Paragraph) Section() render.Section {
	return render.Section{
		Template: p.Text,
		Run: doc.RunStyle{
			Font:      p.Font,
			Size:      p.Size * 2,
			Bold:      p.Bold,
			Italic:    p.Italic,
			Underline: p.Underline,
			Color:     strings.TrimPrefix(p.Color, "#"),
		},
		Align:   doc.ParseAlignment(p.Align),
		StyleID: StyleID(p.Style),
		Spacing: doc.Spacing{
			Before: points(p.MarginTop),
			After:  points(p.MarginBottom),
			Line:   p.LineSpacing,
			Indent: points(p.Indent),
		},
	}
}

// RunStyle returns the run style for code and output text.
func (c Code) RunStyle() doc.RunStyle {
	return doc.RunStyle{Font: c.Font, Size: c.Size * 2}
}

// StyleID maps a style name to its document style id. Display names such
// as "Heading 1" and ids such as "Heading1" resolve to the same id.
func StyleID(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "")
}

// points converts points to twips.
func points(pt float64) int {
	return int(pt*20 + 0.5)
}
