package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labdoc/pkg/core/align"
	"github.com/matzehuels/labdoc/pkg/core/ansi"
	"github.com/matzehuels/labdoc/pkg/core/rtf"
	"github.com/matzehuels/labdoc/pkg/core/template"
	"github.com/matzehuels/labdoc/pkg/core/token"
	"github.com/matzehuels/labdoc/pkg/doc"
	"github.com/matzehuels/labdoc/pkg/errors"
)

// Default code font. Size is in half-points.
const (
	DefaultCodeFont = "CaskaydiaCove NF"
	DefaultCodeSize = 20
)

// Section is a paragraph template together with the plain attributes its
// paragraphs receive.
type Section struct {
	Template string
	Run      doc.RunStyle
	Align    doc.Alignment
	StyleID  string
	Spacing  doc.Spacing
}

// paragraph returns an empty paragraph carrying s's attributes.
func (s Section) paragraph() doc.Paragraph {
	return doc.Paragraph{Align: s.Align, StyleID: s.StyleID, Spacing: s.Spacing}
}

// Options configures a [Builder].
type Options struct {
	// Code is the run style of code and program output. Font and Size
	// default to [DefaultCodeFont] and [DefaultCodeSize].
	Code doc.RunStyle

	Strategy align.Strategy
	Scope    align.Scope

	// Keywords feeds the keyword-assist rule; nil selects
	// [align.DefaultKeywords].
	Keywords []string

	Logger *log.Logger
}

// Stats describes one code render.
type Stats struct {
	Lines    int
	Rich     bool // formatting was recovered from RTF
	Fallback bool // RTF was supplied but could not be decoded

	// DecodeErr is the DECODE_FAILED error behind a fallback.
	DecodeErr error

	// Matches counts tokens per cascade rule. Only the heuristic
	// strategy fills it.
	Matches map[align.Rule]int

	// Segments and Unformatted count the runs of a stream render.
	Segments    int
	Unformatted int
}

func (s *Stats) count(r align.Rule) {
	if s.Matches == nil {
		s.Matches = make(map[align.Rule]int)
	}
	s.Matches[r]++
}

// Builder emits paragraphs for report sections. It holds no per-render
// state and may be shared.
type Builder struct {
	code     doc.RunStyle
	strategy align.Strategy
	scope    align.Scope
	aligner  *align.Aligner
	logger   *log.Logger
}

// NewBuilder returns a builder configured by opts.
func NewBuilder(opts Options) *Builder {
	code := opts.Code
	if code.Font == "" {
		code.Font = DefaultCodeFont
	}
	if code.Size == 0 {
		code.Size = DefaultCodeSize
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = align.Heuristic
	}
	scope := opts.Scope
	if scope == "" {
		scope = align.ScopeBlock
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{
		code:     code,
		strategy: strategy,
		scope:    scope,
		aligner:  align.NewAligner(opts.Keywords),
		logger:   logger,
	}
}

// Plain substitutes f into s's template and emits one paragraph per line,
// every run carrying the section's attributes. Empty text yields a single
// paragraph with one empty run.
func (b *Builder) Plain(s Section, f template.Fields) []doc.Paragraph {
	text := template.Substitute(s.Template, f)
	if text == "" {
		p := s.paragraph()
		p.Runs = []doc.Run{{}}
		return []doc.Paragraph{p}
	}
	lines := Lines(text)
	ps := make([]doc.Paragraph, len(lines))
	for i, line := range lines {
		p := s.paragraph()
		p.Runs = []doc.Run{{Text: line, Style: s.Run}}
		ps[i] = p
	}
	return ps
}

// Body renders a titled section body. A {solution} placeholder selects
// [Builder.Solution], otherwise an {output} placeholder selects
// [Builder.Output], otherwise the body is plain text.
func (b *Builder) Body(s Section, f template.Fields, rich string) ([]doc.Paragraph, Stats) {
	switch {
	case template.Has(s.Template, template.Solution):
		return b.Solution(s, f, rich)
	case template.Has(s.Template, template.Output):
		ps := b.Output(s, f)
		return ps, Stats{Lines: len(ps)}
	}
	ps := b.Plain(s, f)
	return ps, Stats{Lines: len(ps)}
}

// Solution renders the solution section. When s's template holds the
// {solution} placeholder and rich is non-empty, the code is rendered with
// recovered formatting; otherwise, and whenever rich fails to decode, the
// section falls back to [Builder.Plain].
func (b *Builder) Solution(s Section, f template.Fields, rich string) ([]doc.Paragraph, Stats) {
	if rich == "" || !template.Has(s.Template, template.Solution) {
		ps := b.Plain(s, f)
		return ps, Stats{Lines: len(ps)}
	}
	richDoc, err := rtf.Decode(rich)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode rich code for entry %d", f.Index+1)
		b.logger.Debug("rich code unusable, using plain text", "err", err)
		ps := b.Plain(s, f)
		return ps, Stats{Lines: len(ps), Fallback: true, DecodeErr: err}
	}
	return b.Code(f.Solution, richDoc, s)
}

// Code emits one paragraph per line of raw, with each token formatted as
// recovered from rich. Paragraphs take style id and spacing from s.
func (b *Builder) Code(raw string, rich *rtf.Document, s Section) ([]doc.Paragraph, Stats) {
	lines := Lines(raw)
	stats := Stats{Lines: len(lines), Rich: rich != nil}
	ps := make([]doc.Paragraph, len(lines))

	var colors rtf.ColorTable
	if rich != nil {
		colors = rich.Colors
	}

	switch b.strategy {
	case align.Streaming:
		stream := align.NewStream(rich)
		for i, line := range lines {
			ps[i] = b.codeParagraph(s, b.streamRuns(stream.Line(line), colors, &stats))
		}
		if stream.Diverged() {
			b.logger.Debug("rich text diverged from raw code", "lines", len(lines))
		}
	default:
		idx := align.BuildIndex(rich)
		used := make(align.Used)
		for i, line := range lines {
			if b.scope == align.ScopeLine {
				used = make(align.Used)
			}
			ps[i] = b.codeParagraph(s, b.tokenRuns(line, idx, used, colors, &stats))
		}
	}
	return ps, stats
}

// Output renders the output section. When s's template holds the {output}
// placeholder, each line of f.Output becomes a paragraph in the code font
// and blank lines become a paragraph with one empty run. Otherwise the
// section is plain text.
func (b *Builder) Output(s Section, f template.Fields) []doc.Paragraph {
	if !template.Has(s.Template, template.Output) {
		return b.Plain(s, f)
	}
	lines := Lines(ansi.Strip(f.Output))
	ps := make([]doc.Paragraph, len(lines))
	for i, line := range lines {
		p := doc.Paragraph{StyleID: s.StyleID, Spacing: s.Spacing}
		if strings.TrimSpace(line) == "" {
			p.Runs = []doc.Run{{}}
		} else {
			p.Runs = []doc.Run{{Text: line, Style: b.code}}
		}
		ps[i] = p
	}
	return ps
}

func (b *Builder) codeParagraph(s Section, runs []doc.Run) doc.Paragraph {
	if len(runs) == 0 {
		runs = []doc.Run{{Style: b.code}}
	}
	return doc.Paragraph{Runs: runs, StyleID: s.StyleID, Spacing: s.Spacing}
}

func (b *Builder) tokenRuns(line string, idx *align.Index, used align.Used, colors rtf.ColorTable, stats *Stats) []doc.Run {
	toks := token.Tokenize(line)
	runs := make([]doc.Run, 0, len(toks))
	for _, tok := range toks {
		if tok.IsSpace() {
			runs = append(runs, doc.Run{Text: tok.Text, Style: b.code})
			continue
		}
		f, rule := b.aligner.Match(tok, idx, used)
		stats.count(rule)
		style := b.code
		if rule != align.RuleNone {
			style = ResolveFormat(b.code, f, colors)
		}
		runs = append(runs, doc.Run{Text: tok.Text, Style: style})
	}
	return runs
}

func (b *Builder) streamRuns(segs []align.Segment, colors rtf.ColorTable, stats *Stats) []doc.Run {
	runs := make([]doc.Run, 0, len(segs))
	for _, seg := range segs {
		style := b.code
		stats.Segments++
		if seg.Formatted {
			style = ResolveFormat(b.code, seg.Format, colors)
		} else {
			stats.Unformatted++
		}
		runs = append(runs, doc.Run{Text: seg.Text, Style: style})
	}
	return runs
}
