// Package ansi removes terminal color sequences from captured program output.
package ansi

import "strings"

// ESC is the escape control character that introduces a sequence.
const ESC = 0x1b

// Strip removes every "ESC [ ... m" sequence from s.
//
// A sequence runs from ESC '[' up to and including the next 'm'. An
// unterminated sequence swallows the rest of the string. A lone ESC that
// is not followed by '[' is kept. Strip never fails; input without escape
// sequences is returned unchanged.
func Strip(s string) string {
	if strings.IndexByte(s, ESC) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ESC && i+1 < len(s) && s[i+1] == '[' {
			end := strings.IndexByte(s[i+2:], 'm')
			if end < 0 {
				break
			}
			i += 2 + end
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
