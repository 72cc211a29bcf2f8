package ansi

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"color wrapped", "\x1b[31mHELLO\x1b[0m", "HELLO"},
		{"no escapes", "plain output\nline 2", "plain output\nline 2"},
		{"empty", "", ""},
		{"multiple params", "\x1b[1;32mok\x1b[0m done", "ok done"},
		{"unterminated swallows rest", "before\x1b[31after", "before"},
		{"lone escape kept", "a\x1bb", "a\x1bb"},
		{"escape at end kept", "a\x1b", "a\x1b"},
		{"adjacent sequences", "\x1b[1m\x1b[4mX\x1b[0m", "X"},
		{"utf8 preserved", "\x1b[33m→ café\x1b[0m", "→ café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.in); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
