package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// RTF is a chroma formatter that writes highlighted code as an RTF document
// the labdoc decoder reads back: a color table, then one group per styled
// token carrying \cfN, \b, \i and \ul. Unstyled tokens are written bare.
var RTF chroma.Formatter = chroma.FormatterFunc(formatRTF)

type rtfColors struct {
	index map[chroma.Colour]int
	order []chroma.Colour
}

func (c *rtfColors) ref(col chroma.Colour) int {
	if i, ok := c.index[col]; ok {
		return i
	}
	c.order = append(c.order, col)
	c.index[col] = len(c.order)
	return len(c.order)
}

func formatRTF(w io.Writer, style *chroma.Style, it chroma.Iterator) error {
	colors := &rtfColors{index: map[chroma.Colour]int{}}

	var body strings.Builder
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := style.Get(tok.Type)
		var ctrl strings.Builder
		if entry.Colour.IsSet() {
			fmt.Fprintf(&ctrl, `\cf%d`, colors.ref(entry.Colour))
		}
		if entry.Bold == chroma.Yes {
			ctrl.WriteString(`\b`)
		}
		if entry.Italic == chroma.Yes {
			ctrl.WriteString(`\i`)
		}
		if entry.Underline == chroma.Yes {
			ctrl.WriteString(`\ul`)
		}

		text := escapeRTF(tok.Value)
		if ctrl.Len() == 0 {
			body.WriteString(text)
			continue
		}
		body.WriteString("{")
		body.WriteString(ctrl.String())
		body.WriteString(" ")
		body.WriteString(text)
		body.WriteString("}")
	}

	var out strings.Builder
	out.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0\fmodern Courier New;}}`)
	out.WriteString(`{\colortbl;`)
	for _, col := range colors.order {
		fmt.Fprintf(&out, `\red%d\green%d\blue%d;`, col.Red(), col.Green(), col.Blue())
	}
	out.WriteString("}\n\\f0 ")
	out.WriteString(body.String())
	out.WriteString("}\n")

	_, err := io.WriteString(w, out.String())
	return err
}

// escapeRTF quotes control characters and writes BMP runes beyond ASCII as
// \uN escapes with a '?' fallback.
func escapeRTF(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString("\\par\n")
		case r == '\r':
		case r == '\t':
			b.WriteString(`\tab `)
		case r < 0x80 || r > 0xFFFF:
			// \uN only reaches the BMP; astral runes stay UTF-8.
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, `\u%d?`, int16(r))
		}
	}
	return b.String()
}
