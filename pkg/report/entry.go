package report

import (
	"sort"

	"github.com/matzehuels/labdoc/pkg/core/ansi"
	"github.com/matzehuels/labdoc/pkg/core/template"
)

// Entry is one question of a lab report.
type Entry struct {
	// Index orders entries and numbers them; {n} renders Index+1.
	Index     int     `json:"index"`
	Question  string  `json:"question"`
	Extension string  `json:"extension"`
	Code      string  `json:"code"`
	CodeRTF   *string `json:"code_rtf,omitempty"`
	// Output is the program output, possibly with terminal escapes.
	Output string `json:"output_rtf"`
}

// Rich returns the RTF rendering of the code, or "" when there is none.
func (e Entry) Rich() string {
	if e.CodeRTF == nil {
		return ""
	}
	return *e.CodeRTF
}

// Fields returns the template values for e.
func (e Entry) Fields() template.Fields {
	return template.Fields{
		Index:    e.Index,
		Question: e.Question,
		Solution: e.Code,
		Output:   ansi.Strip(e.Output),
	}
}

// Sorted returns a copy of entries in ascending Index order. Entries with
// equal indexes keep their input order.
func Sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
