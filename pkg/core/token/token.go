// Package token splits a line of source code into the lexical units used to
// align it against a highlighter's output.
//
// The splitter is deliberately language-agnostic: it knows about quoted
// string literals, a fixed set of single-character operators and
// punctuation, and whitespace. Everything else is a word. Concatenating the
// text of the returned tokens always reproduces the input line.
package token

// Kind classifies a [Token].
type Kind int

const (
	// Word is an identifier, number or any other run of non-boundary characters.
	Word Kind = iota
	// Punct is a single operator or punctuation character.
	Punct
	// String is a quoted literal, quotes included.
	String
	// Space is a single space or tab.
	Space
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Punct:
		return "punct"
	case String:
		return "string"
	case Space:
		return "space"
	}
	return "unknown"
}

// Token is one lexical unit of a code line.
type Token struct {
	Text string
	Kind Kind
}

// IsSpace reports whether t is whitespace and therefore never formatted.
func (t Token) IsSpace() bool { return t.Kind == Space }

// IsPunct reports whether c forms a single-character [Punct] token.
func IsPunct(c rune) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.',
		'+', '-', '*', '/', '=', '<', '>', '!', '&', '|':
		return true
	}
	return false
}

// IsQuote reports whether c opens a string literal.
func IsQuote(c rune) bool { return c == '"' || c == '\'' }

// Tokenize splits line into tokens in a single left-to-right pass.
//
// A quote opens a [String] token that runs until the same quote appears
// again unescaped; an unterminated literal runs to the end of the line.
// Spaces and tabs become one [Space] token each so the exact spacing
// survives. Characters accepted by [IsPunct] are single [Punct] tokens.
// Everything else accumulates into a [Word].
func Tokenize(line string) []Token {
	var (
		tokens []Token
		cur    []rune
		quote  rune
	)

	flush := func(kind Kind) {
		if len(cur) > 0 {
			tokens = append(tokens, Token{Text: string(cur), Kind: kind})
			cur = cur[:0]
		}
	}

	for _, c := range line {
		if quote != 0 {
			cur = append(cur, c)
			if c == quote && !escaped(cur) {
				quote = 0
				flush(String)
			}
			continue
		}

		switch {
		case IsQuote(c):
			flush(Word)
			cur = append(cur, c)
			quote = c
		case c == ' ' || c == '\t':
			flush(Word)
			tokens = append(tokens, Token{Text: string(c), Kind: Space})
		case IsPunct(c):
			flush(Word)
			tokens = append(tokens, Token{Text: string(c), Kind: Punct})
		default:
			cur = append(cur, c)
		}
	}

	if quote != 0 {
		flush(String)
	} else {
		flush(Word)
	}
	return tokens
}

// escaped reports whether the closing quote just appended to lit is
// preceded by a backslash. The opening quote never counts as escaped.
func escaped(lit []rune) bool {
	n := len(lit)
	return n > 2 && lit[n-2] == '\\'
}
