package rtf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type destination int

const (
	destBody destination = iota
	destColorTable
	destSkip
)

// skippedDestinations lists groups whose content never reaches the body.
var skippedDestinations = map[string]bool{
	"fonttbl":            true,
	"filetbl":            true,
	"stylesheet":         true,
	"listtable":          true,
	"listoverridetable":  true,
	"revtbl":             true,
	"rsidtbl":            true,
	"info":               true,
	"pict":               true,
	"header":             true,
	"headerl":            true,
	"headerr":            true,
	"headerf":            true,
	"footer":             true,
	"footerl":            true,
	"footerr":            true,
	"footerf":            true,
	"footnote":           true,
	"generator":          true,
	"xmlnstbl":           true,
	"themedata":          true,
	"colorschememapping": true,
	"latentstyles":       true,
	"datastore":          true,
}

// groupState is the per-group state pushed on '{' and restored on '}'.
type groupState struct {
	format Format
	dest   destination
	ucSkip int
}

type decoder struct {
	src   string
	pos   int
	cur   groupState
	stack []groupState
	doc   *Document

	pending       strings.Builder
	pendingFormat Format

	// fallback characters still to drop after a \uN escape
	skipChars int

	colorIndex int
	color      Color
	colorSet   bool
}

// Decode parses an RTF string into a [Document].
//
// Whitespace before the opening "{\rtf" is tolerated, as is trailing
// whitespace after the closing brace. Any other structural problem returns
// an error wrapping [ErrMalformed].
func Decode(src string) (*Document, error) {
	src = strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(src, `{\rtf`) {
		return nil, fmt.Errorf(`%w: missing {\rtf header`, ErrMalformed)
	}
	d := &decoder{
		src: src,
		cur: groupState{ucSkip: 1},
		doc: &Document{Colors: ColorTable{}},
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.doc, nil
}

func (d *decoder) run() error {
	closed := false
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		if closed {
			if c != ' ' && c != '\t' && c != '\r' && c != '\n' && c != 0 {
				return fmt.Errorf("%w: content after closing brace at offset %d", ErrMalformed, d.pos)
			}
			d.pos++
			continue
		}
		switch c {
		case '{':
			d.stack = append(d.stack, d.cur)
			d.pos++
		case '}':
			if len(d.stack) == 0 {
				return fmt.Errorf("%w: unbalanced '}' at offset %d", ErrMalformed, d.pos)
			}
			d.closeGroup()
			d.pos++
			closed = len(d.stack) == 0
		case '\\':
			if err := d.control(); err != nil {
				return err
			}
		case '\r', '\n':
			// Raw line breaks are insignificant in RTF.
			d.pos++
		default:
			r, size := utf8.DecodeRuneInString(d.src[d.pos:])
			d.pos += size
			d.emit(r)
		}
	}
	if len(d.stack) != 0 {
		return fmt.Errorf("%w: unexpected end of input inside %d open group(s)", ErrMalformed, len(d.stack))
	}
	d.flush()
	return nil
}

func (d *decoder) closeGroup() {
	if d.cur.dest == destColorTable {
		// A table whose last entry lacks the terminating ';' still defines it.
		if d.colorSet {
			d.commitColor()
		}
	}
	d.cur = d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	// Fallback characters for \uN never extend past the group.
	d.skipChars = 0
}

// control consumes a control word or control symbol starting at the
// backslash under d.pos.
func (d *decoder) control() error {
	d.pos++
	if d.pos >= len(d.src) {
		return fmt.Errorf("%w: dangling backslash at end of input", ErrMalformed)
	}
	c := d.src[d.pos]
	if !isLetter(c) {
		d.pos++
		return d.symbol(c)
	}

	start := d.pos
	for d.pos < len(d.src) && isLetter(d.src[d.pos]) {
		d.pos++
	}
	word := d.src[start:d.pos]

	param, hasParam := 0, false
	if d.pos < len(d.src) && (d.src[d.pos] == '-' || isDigit(d.src[d.pos])) {
		pstart := d.pos
		d.pos++
		for d.pos < len(d.src) && isDigit(d.src[d.pos]) {
			d.pos++
		}
		n, err := strconv.Atoi(d.src[pstart:d.pos])
		if err != nil {
			return fmt.Errorf("%w: bad parameter for \\%s at offset %d", ErrMalformed, word, pstart)
		}
		param, hasParam = n, true
	}
	// A single space delimits the control word and is not part of the text.
	if d.pos < len(d.src) && d.src[d.pos] == ' ' {
		d.pos++
	}
	d.word(word, param, hasParam)
	return nil
}

func (d *decoder) symbol(c byte) error {
	switch c {
	case '\\', '{', '}':
		d.emit(rune(c))
	case '~':
		d.emit('\u00a0')
	case '_':
		d.emit('\u2011')
	case '-':
		// optional hyphen
	case '*':
		d.cur.dest = destSkip
	case '\n', '\r':
		d.emit('\n')
	case '\'':
		if d.pos+2 > len(d.src) {
			return fmt.Errorf("%w: truncated hex escape at offset %d", ErrMalformed, d.pos)
		}
		b, err := strconv.ParseUint(d.src[d.pos:d.pos+2], 16, 8)
		if err != nil {
			return fmt.Errorf("%w: bad hex escape %q at offset %d", ErrMalformed, d.src[d.pos:d.pos+2], d.pos)
		}
		d.pos += 2
		d.emit(charmap.Windows1252.DecodeByte(byte(b)))
	}
	return nil
}

func (d *decoder) word(word string, param int, hasParam bool) {
	on := !hasParam || param != 0
	switch word {
	case "b":
		d.cur.format.Bold = on
	case "i":
		d.cur.format.Italic = on
	case "ul":
		d.cur.format.Underline = on
	case "ulnone":
		d.cur.format.Underline = false
	case "cf":
		d.cur.format.ColorRef = param
	case "plain":
		d.cur.format = Format{}
	case "par", "line":
		d.emit('\n')
	case "tab":
		d.emit('\t')
	case "uc":
		d.cur.ucSkip = param
	case "u":
		if param < 0 {
			param += 65536
		}
		d.emit(rune(param))
		if d.cur.dest == destBody {
			d.skipChars = d.cur.ucSkip
		}
	case "colortbl":
		d.cur.dest = destColorTable
	case "red", "green", "blue":
		if d.cur.dest != destColorTable {
			return
		}
		v := uint8(clamp(param))
		switch word {
		case "red":
			d.color.Red = v
		case "green":
			d.color.Green = v
		case "blue":
			d.color.Blue = v
		}
		d.colorSet = true
	default:
		if skippedDestinations[word] {
			d.cur.dest = destSkip
		}
	}
}

func (d *decoder) emit(r rune) {
	switch d.cur.dest {
	case destSkip:
		return
	case destColorTable:
		if r == ';' {
			d.commitColor()
		}
		return
	}
	if d.skipChars > 0 {
		d.skipChars--
		return
	}
	if d.pending.Len() > 0 && d.pendingFormat != d.cur.format {
		d.flush()
	}
	d.pendingFormat = d.cur.format
	d.pending.WriteRune(r)
}

func (d *decoder) flush() {
	if d.pending.Len() == 0 {
		return
	}
	d.doc.Blocks = append(d.doc.Blocks, Block{Text: d.pending.String(), Format: d.pendingFormat})
	d.pending.Reset()
}

func (d *decoder) commitColor() {
	if d.colorSet {
		d.doc.Colors[d.colorIndex] = d.color
	}
	d.colorIndex++
	d.color = Color{}
	d.colorSet = false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
