package calendar

import (
	"strings"

	"github.com/teambition/rrule-go"
)

const rrulePrefix = "RRULE:"

// NormalizeRecurrence validates a model-proposed recurrence string. Only
// syntactically valid rules carrying the RRULE: prefix are honored;
// anything else (empty, missing prefix, malformed body) yields ok=false
// and the event is forced non-recurring.
func NormalizeRecurrence(raw string) (rule string, ok bool) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, rrulePrefix) {
		return "", false
	}
	if _, err := rrule.StrToRRule(strings.TrimPrefix(s, rrulePrefix)); err != nil {
		return "", false
	}
	return s, true
}
