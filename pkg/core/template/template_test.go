package template

import "testing"

func TestSubstitute(t *testing.T) {
	fields := Fields{
		Index:    0,
		Question: "2+2?",
		Solution: "print(2+2)",
		Output:   "4",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"number and question", "Q{n}: {question}", "Q1: 2+2?"},
		{"all placeholders", "{n}|{question}|{solution}|{output}", "1|2+2?|print(2+2)|4"},
		{"repeated placeholder", "{n}.{n}", "1.1"},
		{"no placeholders", "Solution", "Solution"},
		{"unknown placeholder kept", "{name} {n}", "{name} 1"},
		{"empty", "", ""},
		{"order independent", "{output} before {question}", "4 before 2+2?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.text, fields); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSubstituteDoesNotReexpand(t *testing.T) {
	f := Fields{Index: 4, Question: "what does {solution} print?", Solution: "x"}
	got := Substitute("{n}: {question}", f)
	want := "5: what does {solution} print?"
	if got != want {
		t.Errorf("Substitute = %q, want %q", got, want)
	}
}

func TestHas(t *testing.T) {
	if !Has("```{solution}```", Solution) {
		t.Error("Has should find {solution}")
	}
	if Has("Output", Output) {
		t.Error("Has should not find {output} in plain text")
	}
}
