package render

import (
	"strings"

	"github.com/matzehuels/labdoc/pkg/core/rtf"
	"github.com/matzehuels/labdoc/pkg/doc"
)

// ResolveFormat applies rich formatting f to base. The color reference is
// looked up in colors; a miss leaves base's color in place.
func ResolveFormat(base doc.RunStyle, f rtf.Format, colors rtf.ColorTable) doc.RunStyle {
	s := base
	s.Bold = f.Bold
	s.Italic = f.Italic
	s.Underline = f.Underline
	if c, ok := colors.Lookup(f.ColorRef); ok {
		s.Color = c.Hex()
	}
	return s
}

// Lines splits text into lines. A trailing line feed does not start an
// extra line, carriage returns before line feeds are dropped, and the empty
// string is a single empty line.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
