package task

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/geminidesk/geminidesk/internal/models"
)

var statusKeywords = []struct {
	keywords []string
	status   models.TaskStatus
}{
	{[]string{"progress", "doing", "ongoing"}, models.TaskStatusInProgress},
	{[]string{"done", "complete", "finished"}, models.TaskStatusDone},
	{[]string{"not", "todo", "to do", "pending"}, models.TaskStatusNotStarted},
}

// NormalizeStatus maps free text to one of the task database's allowed
// status options by substring match; unmatched or empty text defaults to
// Not started.
func NormalizeStatus(value string) models.TaskStatus {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return models.TaskStatusNotStarted
	}
	for _, group := range statusKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(v, kw) {
				return group.status
			}
		}
	}
	return models.TaskStatusNotStarted
}

// NormalizeDueDate converts natural date text to an ISO 8601 date
// (YYYY-MM-DD). Strict parsing runs first; vague phrases fall through
// ordered heuristics, and anything still ambiguous lands one week out.
// Best effort only, not a natural-language date parser.
func NormalizeDueDate(value string, now time.Time) string {
	if t, err := dateparse.ParseAny(value); err == nil {
		return t.Format("2006-01-02")
	}

	text := strings.ToLower(value)
	switch {
	case strings.Contains(text, "next week"):
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	case strings.Contains(text, "spring"):
		return time.Date(now.Year(), time.March, 15, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	case strings.Contains(text, "quarter"):
		return now.AddDate(0, 0, 90).Format("2006-01-02")
	default:
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	}
}
