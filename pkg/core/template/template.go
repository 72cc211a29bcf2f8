// Package template fills report paragraph templates with entry fields.
//
// Four placeholders are recognized:
//
//	{n}         1-based entry number
//	{question}  question text
//	{solution}  raw source code
//	{output}    program output with terminal escapes removed
//
// Substitution is a literal string replace. Every occurrence of a
// placeholder is replaced, and substituted values are never scanned again,
// so a question that itself contains "{solution}" stays as typed. Text with
// no placeholders is returned unchanged.
package template

import (
	"strconv"
	"strings"
)

// Placeholders.
const (
	N        = "{n}"
	Question = "{question}"
	Solution = "{solution}"
	Output   = "{output}"
)

// Fields are the values substituted into a template.
type Fields struct {
	Index    int // 0-based; rendered 1-based by {n}
	Question string
	Solution string
	Output   string
}

// Substitute replaces every placeholder in text with its field value.
func Substitute(text string, f Fields) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		N, strconv.Itoa(f.Index+1),
		Question, f.Question,
		Solution, f.Solution,
		Output, f.Output,
	)
	return r.Replace(text)
}

// Has reports whether text contains placeholder.
func Has(text, placeholder string) bool {
	return strings.Contains(text, placeholder)
}
