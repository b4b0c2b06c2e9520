package calendar

import "testing"

func TestNormalizeRecurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"valid weekly rule", "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR", "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR", true},
		{"valid daily with count", "RRULE:FREQ=DAILY;COUNT=10", "RRULE:FREQ=DAILY;COUNT=10", true},
		{"surrounding whitespace trimmed", "  RRULE:FREQ=MONTHLY  ", "RRULE:FREQ=MONTHLY", true},
		{"empty string", "", "", false},
		{"missing prefix", "FREQ=WEEKLY", "", false},
		{"prose instead of rule", "every other tuesday", "", false},
		{"prefix with malformed body", "RRULE:FREQ=SOMETIMES", "", false},
		{"lowercase prefix", "rrule:FREQ=DAILY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeRecurrence(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeRecurrence(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NormalizeRecurrence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScopesMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  []string
		want []string
		ok   bool
	}{
		{"exact match", []string{Scope}, []string{Scope}, true},
		{"order independent", []string{"b", "a"}, []string{"a", "b"}, true},
		{"missing scope", []string{}, []string{Scope}, false},
		{"extra scope", []string{Scope, "extra"}, []string{Scope}, false},
		{"readonly variant is not a match", []string{Scope + ".readonly"}, []string{Scope}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scopesMatch(tt.got, tt.want); got != tt.ok {
				t.Errorf("scopesMatch(%v, %v) = %v, want %v", tt.got, tt.want, got, tt.ok)
			}
		})
	}
}
