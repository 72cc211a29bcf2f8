// Package report assembles lab report entries into a [doc.Document].
//
// Each entry contributes, in order: the optional header followed by a
// blank paragraph, the question, a blank, the solution title and body, a
// blank, the output title and body, a blank, and the optional footer
// preceded by a blank. Entries are separated by a page-break paragraph;
// none follows the last entry. Entries are rendered in ascending index
// order regardless of input order.
//
// Section bodies are rendered by [render.Builder]: a body with a
// {solution} placeholder renders the entry's code with formatting
// recovered from its RTF, a body with {output} renders the program output
// line by line, anything else is substituted plain text.
package report

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labdoc/pkg/config"
	"github.com/matzehuels/labdoc/pkg/core/align"
	"github.com/matzehuels/labdoc/pkg/core/render"
	"github.com/matzehuels/labdoc/pkg/core/template"
	"github.com/matzehuels/labdoc/pkg/doc"
)

// Styles are the paragraph styles every report declares, in order.
var Styles = []doc.Style{
	{ID: "Heading1", Name: "Heading 1"},
	{ID: "Heading2", Name: "Heading 2"},
	{ID: "Heading3", Name: "Heading 3"},
	{ID: "Heading4", Name: "Heading 4"},
	{ID: "Heading5", Name: "Heading 5"},
	{ID: "Heading6", Name: "Heading 6"},
	{ID: "Title", Name: "Title"},
	{ID: "Subtitle", Name: "Subtitle"},
	{ID: "Normal", Name: "Normal"},
	{ID: "Quote", Name: "Quote"},
	{ID: "Emphasis", Name: "Emphasis"},
	{ID: "Strong", Name: "Strong"},
}

// Stats summarizes an assembly.
type Stats struct {
	Entries        int
	Paragraphs     int
	PageBreaks     int
	RichBlocks     int // code blocks with recovered formatting
	PlainBlocks    int // code blocks rendered as plain text
	DecodeFailures int
	Matches        map[align.Rule]int // heuristic strategy, per token
	Segments       int                // stream strategy, per run
}

func (s *Stats) add(st render.Stats, code bool) {
	if st.Fallback {
		s.DecodeFailures++
	}
	if !code {
		return
	}
	if st.Rich {
		s.RichBlocks++
	} else {
		s.PlainBlocks++
	}
	s.Segments += st.Segments
	for r, n := range st.Matches {
		if s.Matches == nil {
			s.Matches = make(map[align.Rule]int)
		}
		s.Matches[r] += n
	}
}

// EntryFunc is called after each entry is rendered.
type EntryFunc func(e Entry, paragraphs int, st render.Stats)

// Option configures an [Assembler].
type Option func(*Assembler)

// WithLogger sets the logger. Fallbacks are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEntryFunc registers a callback run after every entry.
func WithEntryFunc(fn EntryFunc) Option {
	return func(a *Assembler) { a.onEntry = fn }
}

// Assembler lays out entries according to a format.
type Assembler struct {
	logger  *log.Logger
	onEntry EntryFunc
	builder *render.Builder

	header, footer *render.Section
	question       render.Section
	solutionTitle  render.Section
	solution       render.Section
	outputTitle    render.Section
	output         render.Section
}

// NewAssembler returns an assembler for cfg. cfg must have passed
// [config.Config.Validate].
func NewAssembler(cfg *config.Config, opts ...Option) *Assembler {
	a := &Assembler{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}

	strategy, _ := align.ParseStrategy(cfg.Render.Strategy)
	scope, _ := align.ParseScope(cfg.Render.UsedScope)
	a.builder = render.NewBuilder(render.Options{
		Code:     cfg.Code.RunStyle(),
		Strategy: strategy,
		Scope:    scope,
		Keywords: cfg.Render.Keywords,
		Logger:   a.logger,
	})

	if cfg.Header != nil {
		s := cfg.Header.Section()
		a.header = &s
	}
	if cfg.Footer != nil {
		s := cfg.Footer.Section()
		a.footer = &s
	}
	a.question = cfg.Question.Section()
	a.solutionTitle = cfg.Solution.Title.Section()
	a.solution = cfg.Solution.Section()
	a.outputTitle = cfg.Output.Title.Section()
	a.output = cfg.Output.Section()
	return a
}

// Assemble renders entries into a document.
func (a *Assembler) Assemble(entries []Entry) (doc.Document, Stats) {
	d, stats, _ := a.AssembleContext(context.Background(), entries)
	return d, stats
}

// AssembleContext is [Assembler.Assemble] checking ctx before each entry.
// On cancellation it returns the partial document and ctx's error.
func (a *Assembler) AssembleContext(ctx context.Context, entries []Entry) (doc.Document, Stats, error) {
	d := doc.Document{Styles: append([]doc.Style(nil), Styles...)}
	var stats Stats

	sorted := Sorted(entries)
	for i, e := range sorted {
		if err := ctx.Err(); err != nil {
			stats.Paragraphs = len(d.Paragraphs)
			return d, stats, err
		}
		n := len(d.Paragraphs)
		st := a.entry(&d, e, &stats)
		if i < len(sorted)-1 {
			d.Add(doc.PageBreak())
			stats.PageBreaks++
		}
		stats.Entries++
		a.logger.Debug("rendered entry", "entry", e.Index+1, "paragraphs", len(d.Paragraphs)-n, "rich", st.Rich)
		if a.onEntry != nil {
			a.onEntry(e, len(d.Paragraphs)-n, st)
		}
	}
	stats.Paragraphs = len(d.Paragraphs)
	return d, stats, nil
}

// entry appends the paragraphs of one entry and returns the stats of its
// code block.
func (a *Assembler) entry(d *doc.Document, e Entry, stats *Stats) render.Stats {
	f := e.Fields()
	rich := e.Rich()

	if a.header != nil {
		d.Add(a.builder.Plain(*a.header, f)...)
		d.Add(doc.Blank())
	}
	d.Add(a.builder.Plain(a.question, f)...)
	d.Add(doc.Blank())

	d.Add(a.builder.Plain(a.solutionTitle, f)...)
	ps, code := a.builder.Body(a.solution, f, rich)
	d.Add(ps...)
	stats.add(code, template.Has(a.solution.Template, template.Solution))
	d.Add(doc.Blank())

	d.Add(a.builder.Plain(a.outputTitle, f)...)
	ps, st := a.builder.Body(a.output, f, rich)
	d.Add(ps...)
	stats.add(st, template.Has(a.output.Template, template.Solution))
	d.Add(doc.Blank())

	if a.footer != nil {
		d.Add(doc.Blank())
		d.Add(a.builder.Plain(*a.footer, f)...)
	}

	return code
}
