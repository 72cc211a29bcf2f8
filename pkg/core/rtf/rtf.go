package rtf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned (wrapped) by [Decode] for input that is not
// well-formed RTF.
var ErrMalformed = errors.New("malformed rtf")

// Color is an RGB triple from an RTF color table.
type Color struct {
	Red, Green, Blue uint8
}

// Hex returns the color as six lowercase hex digits without a leading '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// ColorTable maps color references (\cfN) to colors.
type ColorTable map[int]Color

// Lookup resolves a color reference. ok is false for the auto color (0) and
// for references the table does not define.
func (t ColorTable) Lookup(ref int) (Color, bool) {
	c, ok := t[ref]
	return c, ok
}

// Format is the character formatting active for a block.
type Format struct {
	Bold      bool
	Italic    bool
	Underline bool
	ColorRef  int
}

// IsZero reports whether f carries no formatting at all.
func (f Format) IsZero() bool {
	return f == Format{}
}

// Block is a run of text sharing one [Format].
type Block struct {
	Text   string
	Format Format
}

// Document is a decoded RTF document.
type Document struct {
	Blocks []Block
	Colors ColorTable
}

// Text returns the concatenated text of all blocks.
func (d *Document) Text() string {
	var b strings.Builder
	for _, blk := range d.Blocks {
		b.WriteString(blk.Text)
	}
	return b.String()
}
