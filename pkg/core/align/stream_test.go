package align

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/labdoc/pkg/core/rtf"
)

func TestStreamAligned(t *testing.T) {
	doc := &rtf.Document{Blocks: []rtf.Block{
		{Text: "int", Format: fmtKeyword},
		{Text: " x = "},
		{Text: "1", Format: fmtString},
		{Text: ";\r\n"},
		{Text: "x++;"},
	}}
	s := NewStream(doc)

	got := s.Line("int x = 1;")
	want := []Segment{
		{Text: "int", Format: fmtKeyword, Formatted: true},
		{Text: " x = ", Formatted: true},
		{Text: "1", Format: fmtString, Formatted: true},
		{Text: ";", Formatted: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line 1 mismatch (-want +got):\n%s", diff)
	}

	got = s.Line("x++;")
	want = []Segment{{Text: "x++;", Formatted: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line 2 mismatch (-want +got):\n%s", diff)
	}
	if s.Diverged() {
		t.Error("stream should not diverge on identical text")
	}
}

func TestStreamDiverges(t *testing.T) {
	doc := &rtf.Document{Blocks: []rtf.Block{
		{Text: "int", Format: fmtKeyword},
		{Text: " x;\nreturn x;"},
	}}
	s := NewStream(doc)

	got := s.Line("int y;")
	want := []Segment{
		{Text: "int", Format: fmtKeyword, Formatted: true},
		{Text: " ", Formatted: true},
		{Text: "y;"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line 1 mismatch (-want +got):\n%s", diff)
	}
	if !s.Diverged() {
		t.Fatal("stream should diverge")
	}

	got = s.Line("return x;")
	want = []Segment{{Text: "return x;"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line 2 mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamRichLineLonger(t *testing.T) {
	doc := &rtf.Document{Blocks: []rtf.Block{{Text: "abc\nd", Format: fmtIdent}}}
	s := NewStream(doc)

	s.Line("ab")
	if !s.Diverged() {
		t.Error("leftover rich text on a line should count as divergence")
	}
}

func TestStreamNilDocument(t *testing.T) {
	s := NewStream(nil)
	got := s.Line("abc")
	want := []Segment{{Text: "abc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamLossless(t *testing.T) {
	doc := &rtf.Document{Blocks: []rtf.Block{{Text: "fn main() {}", Format: fmtKeyword}}}
	lines := []string{"fn main() {}", "", "  extra line", "über"}
	s := NewStream(doc)
	for _, line := range lines {
		var b strings.Builder
		for _, seg := range s.Line(line) {
			b.WriteString(seg.Text)
		}
		if b.String() != line {
			t.Errorf("rebuilt %q, want %q", b.String(), line)
		}
	}
}
