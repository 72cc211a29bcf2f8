package doc

import "testing"

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"left", AlignLeft},
		{"Center", AlignCenter},
		{" RIGHT ", AlignRight},
		{"justify", AlignJustify},
		{"", AlignLeft},
		{"middle", AlignLeft},
	}
	for _, tt := range tests {
		if got := ParseAlignment(tt.in); got != tt.want {
			t.Errorf("ParseAlignment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParagraphText(t *testing.T) {
	p := Paragraph{Runs: []Run{{Text: "int"}, {Text: " "}, {Text: "x;"}}}
	if got := p.Text(); got != "int x;" {
		t.Errorf("Text() = %q, want %q", got, "int x;")
	}
}

func TestHelpers(t *testing.T) {
	if b := Blank(); len(b.Runs) != 1 || b.Text() != "" || b.HasPageBreak() {
		t.Errorf("Blank() = %+v, want one empty run", b)
	}
	if e := Empty("Quote"); e.StyleID != "Quote" || len(e.Runs) != 1 {
		t.Errorf("Empty() = %+v", e)
	}
	if pb := PageBreak(); !pb.HasPageBreak() {
		t.Error("PageBreak() should carry a page break")
	}
}

func TestDocument(t *testing.T) {
	var d Document
	d.Add(Paragraph{Runs: []Run{{Text: "a"}}}, PageBreak(), Paragraph{Runs: []Run{{Text: "b"}}})

	if got := d.PageBreaks(); got != 1 {
		t.Errorf("PageBreaks() = %d, want 1", got)
	}
	lines := d.Lines()
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "" || lines[2] != "b" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestSpacingIsZero(t *testing.T) {
	if !(Spacing{}).IsZero() {
		t.Error("zero Spacing should report IsZero")
	}
	if (Spacing{Line: 1.5}).IsZero() {
		t.Error("Spacing with Line set should not report IsZero")
	}
}
