package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/labdoc/pkg/core/render"
	"github.com/matzehuels/labdoc/pkg/doc"
	"github.com/matzehuels/labdoc/pkg/errors"
)

const sampleTOML = `
[header]
text = "Lab 3"
align = "Center"
size = 14

[question]
text = "Q{n}: {question}"
bold = true
color = "#1F4E79"

[solution]
text = "{solution}"
style = "Quote"
[solution.title]
text = "Solution"
style = "Heading 2"

[output]
text = "{output}"
[output.title]
text = "Output"
margin_top = 6

[code]
font = "JetBrains Mono"
size = 9

[render]
strategy = "stream"
used_scope = "line"
keywords = ["def", "class"]
`

const sampleYAML = `
question:
  text: "Q{n}: {question}"
  bold: true
  color: "#1F4E79"
solution:
  text: "{solution}"
  style: Quote
  title:
    text: Solution
    style: Heading 2
output:
  text: "{output}"
  title:
    text: Output
    margin_top: 6
render:
  keywords: []
`

func TestDecodeTOML(t *testing.T) {
	cfg, err := DecodeTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("DecodeTOML() error = %v", err)
	}

	if cfg.Header == nil || cfg.Header.Text != "Lab 3" {
		t.Fatalf("Header = %+v, want Lab 3", cfg.Header)
	}
	if cfg.Footer != nil {
		t.Errorf("Footer = %+v, want nil", cfg.Footer)
	}
	if cfg.Solution.Text != "{solution}" || cfg.Solution.Title.Text != "Solution" {
		t.Errorf("Solution = %+v", cfg.Solution)
	}
	if cfg.Output.Title.MarginTop != 6 {
		t.Errorf("Output.Title.MarginTop = %v, want 6", cfg.Output.Title.MarginTop)
	}
	if cfg.Code.Font != "JetBrains Mono" || cfg.Code.Size != 9 {
		t.Errorf("Code = %+v", cfg.Code)
	}
	if diff := cmp.Diff([]string{"def", "class"}, cfg.Render.Keywords); diff != "" {
		t.Errorf("Keywords mismatch (-want +got):\n%s", diff)
	}

	// Defaults fill what the file leaves out.
	if cfg.Question.Font != DefaultFont || cfg.Question.Size != DefaultSize {
		t.Errorf("Question defaults not applied: %+v", cfg.Question)
	}
	if cfg.Render.HighlightStyle != DefaultHighlightStyle {
		t.Errorf("HighlightStyle = %q, want %q", cfg.Render.HighlightStyle, DefaultHighlightStyle)
	}
}

func TestDecodeYAML(t *testing.T) {
	cfg, err := DecodeYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if cfg.Question.Text != "Q{n}: {question}" || !cfg.Question.Bold {
		t.Errorf("Question = %+v", cfg.Question)
	}
	if cfg.Solution.Style != "Quote" || cfg.Solution.Title.Style != "Heading 2" {
		t.Errorf("Solution = %+v", cfg.Solution)
	}
	if cfg.Render.Keywords == nil || len(cfg.Render.Keywords) != 0 {
		t.Errorf("Keywords = %#v, want empty non-nil slice", cfg.Render.Keywords)
	}
	if cfg.Code.Font != render.DefaultCodeFont || cfg.Code.Size != DefaultCodeSize {
		t.Errorf("Code defaults not applied: %+v", cfg.Code)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "[question\ntext = 1"},
		{"strategy", "[render]\nstrategy = \"magic\""},
		{"scope", "[render]\nused_scope = \"file\""},
		{"color", "[question]\ncolor = \"blue\""},
		{"negative size", "[output.title]\nsize = -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTOML(strings.NewReader(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestParagraphSection(t *testing.T) {
	p := Paragraph{
		Text:         "Q{n}",
		Size:         14,
		Align:        "Center",
		Bold:         true,
		Font:         "Arial",
		Color:        "#1F4E79",
		LineSpacing:  1.5,
		MarginTop:    6,
		MarginBottom: 3,
		Indent:       10,
		Style:        "Heading 1",
	}
	got := p.Section()
	want := render.Section{
		Template: "Q{n}",
		Run:      doc.RunStyle{Font: "Arial", Size: 28, Bold: true, Color: "1F4E79"},
		Align:    doc.AlignCenter,
		StyleID:  "Heading1",
		Spacing:  doc.Spacing{Before: 120, After: 60, Line: 1.5, Indent: 200},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Section() mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	if _, err := Find(dir); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Find(empty dir) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	for _, name := range []string{"format.yaml", "format.toml"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if filepath.Base(got) != "format.toml" {
		t.Errorf("Find() = %s, want format.toml to win", got)
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "format.yml")
	if err := os.WriteFile(yml, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(yml)
	if err != nil {
		t.Fatalf("Load(yml) error = %v", err)
	}
	if cfg.Question.Text != "Q{n}: {question}" {
		t.Errorf("Question.Text = %q", cfg.Question.Text)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestWriteDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	cfg, err := DecodeTOML(&buf)
	if err != nil {
		t.Fatalf("decoding written default: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("written default mismatch (-want +got):\n%s", diff)
	}
}
