package align

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/labdoc/pkg/core/rtf"
	"github.com/matzehuels/labdoc/pkg/core/token"
)

// DefaultKeywords is the keyword-assist list used when none is configured.
// It targets highlighters that fuse Java-style modifiers with adjacent text.
var DefaultKeywords = []string{"class", "static", "public", "void", "int", "import", "new"}

// compoundMinLen is the length a token and a key must exceed before the
// compound-identifier rule considers them.
const compoundMinLen = 5

// Rule identifies which step of the cascade produced a match.
type Rule int

const (
	RuleNone Rule = iota
	RuleExact
	RuleFold
	RuleKeyword
	RuleString
	RuleCompound
)

func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleFold:
		return "fold"
	case RuleKeyword:
		return "keyword"
	case RuleString:
		return "string"
	case RuleCompound:
		return "compound"
	}
	return "none"
}

// Scope is the lifetime of a [Used] set during a code block render.
type Scope string

const (
	// ScopeBlock keeps one set for the whole code block.
	ScopeBlock Scope = "block"
	// ScopeLine starts a fresh set on every line.
	ScopeLine Scope = "line"
)

// ParseScope validates a scope name. The empty string selects [ScopeBlock].
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case "", ScopeBlock:
		return ScopeBlock, nil
	case ScopeLine:
		return ScopeLine, nil
	}
	return "", fmt.Errorf("invalid used scope: %q (must be one of: block, line)", s)
}

// Strategy selects how rich formatting is mapped onto raw code.
type Strategy string

const (
	// Heuristic matches tokens through the [Aligner] cascade.
	Heuristic Strategy = "heuristic"
	// Streaming replays the rich text character by character, see [Stream].
	Streaming Strategy = "stream"
)

// ParseStrategy validates a strategy name. The empty string selects [Heuristic].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(s)) {
	case "", Heuristic:
		return Heuristic, nil
	case Streaming:
		return Streaming, nil
	}
	return "", fmt.Errorf("invalid strategy: %q (must be one of: heuristic, stream)", s)
}

// Used records index keys already attributed by the string-literal and
// compound-identifier rules.
type Used map[string]struct{}

// Has reports whether key was consumed.
func (u Used) Has(key string) bool {
	_, ok := u[key]
	return ok
}

// Add marks key as consumed.
func (u Used) Add(key string) { u[key] = struct{}{} }

// Aligner matches raw tokens to rich formats. It is immutable and safe for
// concurrent use; all per-render state lives in the [Index] and [Used] set
// passed to [Aligner.Match].
type Aligner struct {
	keywords map[string]bool
}

// NewAligner returns an aligner using keywords for the keyword-assist rule.
// A nil slice selects [DefaultKeywords]; an empty non-nil slice disables
// the rule.
func NewAligner(keywords []string) *Aligner {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	a := &Aligner{keywords: make(map[string]bool, len(keywords))}
	for _, k := range keywords {
		a.keywords[k] = true
	}
	return a
}

// IsKeyword reports whether s takes part in keyword assist.
func (a *Aligner) IsKeyword(s string) bool { return a.keywords[s] }

// Match finds the format for tok. Whitespace tokens never match. The
// returned rule is [RuleNone] when nothing matched, in which case the
// token should be emitted unformatted.
func (a *Aligner) Match(tok token.Token, idx *Index, used Used) (rtf.Format, Rule) {
	if tok.IsSpace() || idx == nil || idx.Len() == 0 {
		return rtf.Format{}, RuleNone
	}
	text := tok.Text

	if f, ok := idx.Get(text); ok {
		return f, RuleExact
	}

	lower := strings.ToLower(text)
	for _, key := range idx.Keys() {
		if strings.ToLower(key) == lower {
			f, _ := idx.Get(key)
			return f, RuleFold
		}
	}

	if a.IsKeyword(text) {
		for _, key := range idx.Keys() {
			if strings.Contains(key, text) {
				f, _ := idx.Get(key)
				return f, RuleKeyword
			}
		}
	}

	if startsWithQuote(text) {
		for _, key := range idx.Keys() {
			if startsWithQuote(key) && !used.Has(key) {
				used.Add(key)
				f, _ := idx.Get(key)
				return f, RuleString
			}
		}
	}

	if len(text) > compoundMinLen && isIdentifierWord(text) {
		for _, key := range idx.Keys() {
			if len(key) <= compoundMinLen || used.Has(key) {
				continue
			}
			if strings.Contains(text, key) || strings.Contains(key, text) {
				used.Add(key)
				f, _ := idx.Get(key)
				return f, RuleCompound
			}
		}
	}

	return rtf.Format{}, RuleNone
}

func startsWithQuote(s string) bool {
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'")
}

func isIdentifierWord(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) && c != '_' {
			return false
		}
	}
	return true
}
