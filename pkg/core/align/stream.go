package align

import "github.com/matzehuels/labdoc/pkg/core/rtf"

// Segment is a slice of a raw line with the formatting replayed onto it.
type Segment struct {
	Text      string
	Format    rtf.Format
	Formatted bool
}

type richChar struct {
	r rune
	f rtf.Format
}

// Stream replays a rich document over raw code lines, assuming the
// highlighter reproduced the raw text exactly. Feed lines in order with
// [Stream.Line]; once a character disagrees, every remaining character of
// the block is emitted unformatted.
type Stream struct {
	chars    []richChar
	pos      int
	diverged bool
}

// NewStream flattens doc into a character stream. Carriage returns are
// dropped so CRLF and LF sources line up.
func NewStream(doc *rtf.Document) *Stream {
	s := &Stream{}
	if doc == nil {
		s.diverged = true
		return s
	}
	for _, blk := range doc.Blocks {
		for _, r := range blk.Text {
			if r == '\r' {
				continue
			}
			s.chars = append(s.chars, richChar{r: r, f: blk.Format})
		}
	}
	return s
}

// Diverged reports whether replay has given up.
func (s *Stream) Diverged() bool { return s.diverged }

// Line aligns the next raw line. The returned segments concatenate to line;
// adjacent characters with the same formatting share a segment. An empty
// line yields no segments.
func (s *Stream) Line(line string) []Segment {
	var segs []Segment
	appendChar := func(r rune, f rtf.Format, formatted bool) {
		if n := len(segs); n > 0 && segs[n-1].Formatted == formatted && segs[n-1].Format == f {
			segs[n-1].Text += string(r)
			return
		}
		segs = append(segs, Segment{Text: string(r), Format: f, Formatted: formatted})
	}

	for _, r := range line {
		if !s.diverged && s.pos < len(s.chars) && s.chars[s.pos].r == r {
			appendChar(r, s.chars[s.pos].f, true)
			s.pos++
			continue
		}
		s.diverged = true
		appendChar(r, rtf.Format{}, false)
	}

	if !s.diverged && s.pos < len(s.chars) {
		if s.chars[s.pos].r == '\n' {
			s.pos++
		} else {
			// The rich line carries text the raw line does not.
			s.diverged = true
		}
	}
	return segs
}
