package logger

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"empty string", "", 100, ""},
		{"plain string unchanged", "hello world", 100, "hello world"},
		{"control characters stripped", "line\x00one\x1btwo", 100, "lineonetwo"},
		{"newline and tab preserved", "a\n\tb", 100, "a\n\tb"},
		{"truncated with ellipsis", strings.Repeat("x", 10), 5, "xxxxx..."},
		{"invalid utf8 dropped", "ok\xffok", 100, "okok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeString(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("SanitizeString(%q, %d) = %q, want %q", tt.input, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError(nil); got != "" {
		t.Errorf("SanitizeError(nil) = %q, want empty", got)
	}

	err := errors.New("boom\x00bang")
	if got := SanitizeError(err); got != "boombang" {
		t.Errorf("SanitizeError = %q, want %q", got, "boombang")
	}
}
