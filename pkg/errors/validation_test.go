package errors

import (
	"strings"
	"testing"
)

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "py", false},
		{"leading dot", ".java", false},
		{"plus signs", "c++", false},

		{"empty", "", true},
		{"dot only", ".", true},
		{"too long", strings.Repeat("x", 40), true},
		{"separator", "py/../../etc", true},
		{"backslash", `c\d`, true},
		{"space", "p y", true},
		{"control char", "p\x01y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtension(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidExtension) {
				t.Errorf("ValidateExtension(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"docx", "labfile.docx", false},
		{"no extension", "report", false},
		{"hidden", ".report", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"separator", "out/labfile.docx", true},
		{"backslash", `out\labfile.docx`, true},
		{"parent", "..", true},
		{"null byte", "lab\x00file", true},
		{"newline", "lab\nfile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFileName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
