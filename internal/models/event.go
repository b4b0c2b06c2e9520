package models

import (
	"time"
)

const (
	// DefaultEventDuration is the window used when no end time or duration is given
	DefaultEventDuration = 60 * time.Minute
)

// CalendarEvent is the structured draft produced by the generation model
// for calendar insertion. Optional fields are empty/zero when the model
// left them out.
type CalendarEvent struct {
	Title           string   `json:"title"`
	StartTime       string   `json:"start_time,omitempty"` // ISO8601
	EndTime         string   `json:"end_time,omitempty"`   // ISO8601
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Recurrence      string   `json:"recurrence,omitempty"`
	Location        string   `json:"location,omitempty"`
	Participants    []string `json:"participants"`
	Notes           string   `json:"notes"`
	CreatedAt       string   `json:"created_at"`
}

// Window computes the effective start and end of the event.
//
// Missing end time derives from start + duration_minutes, or start + 1h
// when no duration was given. A missing start time defaults to now with a
// one hour window. An unparseable start time is treated as missing.
func (e *CalendarEvent) Window(now time.Time) (start, end time.Time) {
	dur := DefaultEventDuration
	if e.DurationMinutes > 0 {
		dur = time.Duration(e.DurationMinutes) * time.Minute
	}

	if e.StartTime != "" {
		if parsed, err := parseISOTime(e.StartTime); err == nil {
			start = parsed
			if e.EndTime != "" {
				if parsedEnd, err := parseISOTime(e.EndTime); err == nil {
					return start, parsedEnd
				}
			}
			return start, start.Add(dur)
		}
	}

	// No usable start: event gets a default one hour window from now.
	start = now
	return start, start.Add(DefaultEventDuration)
}

// parseISOTime accepts the ISO8601 shapes the model tends to emit:
// full RFC3339, without zone offset, and bare dates.
func parseISOTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// EventInsertResult is the calendar handler's outcome. Error carries the
// failure message; the handler never raises past its boundary.
type EventInsertResult struct {
	CalendarURL string `json:"calendar_url,omitempty"`
	EventID     string `json:"event_id,omitempty"`
	Error       string `json:"error,omitempty"`
}
