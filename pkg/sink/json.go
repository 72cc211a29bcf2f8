package sink

import (
	"encoding/json"

	"github.com/matzehuels/labdoc/pkg/doc"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	buildID string
	source  string
}

// WithJSONBuildID records the build that produced the document.
func WithJSONBuildID(id string) JSONOption { return func(r *jsonRenderer) { r.buildID = id } }

// WithJSONSource records the report directory the document was built from.
func WithJSONSource(dir string) JSONOption { return func(r *jsonRenderer) { r.source = dir } }

type jsonOutput struct {
	BuildID    string          `json:"build_id,omitempty"`
	Source     string          `json:"source,omitempty"`
	Styles     []jsonStyle     `json:"styles"`
	Paragraphs []jsonParagraph `json:"paragraphs"`
}

type jsonStyle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type jsonParagraph struct {
	Style   string       `json:"style,omitempty"`
	Align   string       `json:"align,omitempty"`
	Spacing *jsonSpacing `json:"spacing,omitempty"`
	Runs    []jsonRun    `json:"runs"`
}

type jsonSpacing struct {
	Before int     `json:"before,omitempty"`
	After  int     `json:"after,omitempty"`
	Line   float64 `json:"line,omitempty"`
	Indent int     `json:"indent,omitempty"`
}

type jsonRun struct {
	Text      string `json:"text"`
	Font      string `json:"font,omitempty"`
	Size      int    `json:"size,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Color     string `json:"color,omitempty"`
	PageBreak bool   `json:"page_break,omitempty"`
}

// RenderJSON exports the paragraph stream as pretty-printed JSON for
// inspection and diffing. Sizes are half-points and spacing is twips, as
// in the document model.
func RenderJSON(d doc.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		BuildID:    r.buildID,
		Source:     r.source,
		Styles:     make([]jsonStyle, len(d.Styles)),
		Paragraphs: make([]jsonParagraph, len(d.Paragraphs)),
	}
	for i, s := range d.Styles {
		out.Styles[i] = jsonStyle{ID: s.ID, Name: s.Name}
	}
	for i, p := range d.Paragraphs {
		out.Paragraphs[i] = buildJSONParagraph(p)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONParagraph(p doc.Paragraph) jsonParagraph {
	jp := jsonParagraph{
		Style: p.StyleID,
		Align: string(p.Align),
		Runs:  make([]jsonRun, len(p.Runs)),
	}
	if !p.Spacing.IsZero() {
		s := p.Spacing
		jp.Spacing = &jsonSpacing{Before: s.Before, After: s.After, Line: s.Line, Indent: s.Indent}
	}
	for i, r := range p.Runs {
		jp.Runs[i] = jsonRun{
			Text:      r.Text,
			Font:      r.Style.Font,
			Size:      r.Style.Size,
			Bold:      r.Style.Bold,
			Italic:    r.Style.Italic,
			Underline: r.Style.Underline,
			Color:     r.Style.Color,
			PageBreak: r.Break == doc.BreakPage,
		}
	}
	return jp
}
