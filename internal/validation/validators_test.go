package validation

import "testing"

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control chars", "hel\x00lo\x07", "hello"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequiredTextTag(t *testing.T) {
	t.Parallel()

	type request struct {
		Text string `validate:"required,min=1"`
	}

	if err := Validate.Struct(request{Text: "classify me"}); err != nil {
		t.Errorf("valid request failed validation: %v", err)
	}
	if err := Validate.Struct(request{}); err == nil {
		t.Error("empty text passed validation")
	}
}
