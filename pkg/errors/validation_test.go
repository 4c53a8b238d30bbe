package errors

import (
	"strings"
	"testing"
)

func TestValidateImportPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "base.reg", false},
		{"nested relative", "res/reg/base.reg", false},
		{"absolute", "/etc/fcss/base.reg", false},
		{"parent dir", "../shared/base.reg", false},
		{"with spaces", "my styles/base.reg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImportPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImportPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateImportPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateSuffix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare", "vue", false},
		{"dotted", ".html", false},
		{"empty", "", true},
		{"blank", "  ", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuffix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSuffix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
