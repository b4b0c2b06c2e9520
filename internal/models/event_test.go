package models

import (
	"testing"
	"time"
)

func TestCalendarEvent_Window(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		event     CalendarEvent
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name: "start and end both present",
			event: CalendarEvent{
				StartTime: "2025-11-05T09:00:00Z",
				EndTime:   "2025-11-05T10:30:00Z",
			},
			wantStart: time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 11, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "missing end derives from duration",
			event: CalendarEvent{
				StartTime:       "2025-11-05T09:00:00Z",
				DurationMinutes: 90,
			},
			wantStart: time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 11, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "missing end and duration falls back to one hour",
			event: CalendarEvent{
				StartTime: "2025-11-05T09:00:00Z",
			},
			wantStart: time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "missing start defaults to now with one hour window",
			event:     CalendarEvent{},
			wantStart: now,
			wantEnd:   now.Add(time.Hour),
		},
		{
			name: "unparseable start treated as missing",
			event: CalendarEvent{
				StartTime: "sometime next tuesday",
				EndTime:   "2025-11-05T10:00:00Z",
			},
			wantStart: now,
			wantEnd:   now.Add(time.Hour),
		},
		{
			name: "unparseable end derives from start",
			event: CalendarEvent{
				StartTime:       "2025-11-05T09:00:00Z",
				EndTime:         "whenever",
				DurationMinutes: 30,
			},
			wantStart: time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 11, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "bare date start",
			event: CalendarEvent{
				StartTime: "2025-11-05",
			},
			wantStart: time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 11, 5, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end := tt.event.Window(now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %s, want %s", end, tt.wantEnd)
			}
		})
	}
}

func TestParseAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Agent
	}{
		{"event agent", "EventAgent", AgentEvent},
		{"task agent", "TaskAgent", AgentTask},
		{"note agent", "NoteAgent", AgentNote},
		{"finance agent", "FinanceAgent", AgentFinance},
		{"empty name", "", AgentUnknown},
		{"typo'd name", "EventAgnet", AgentUnknown},
		{"lowercase name", "eventagent", AgentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseAgent(tt.input); got != tt.want {
				t.Errorf("ParseAgent(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
