package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/services/genai"
)

const (
	// reportWindow is the lookback for the weekly report
	reportWindow = 7 * 24 * time.Hour
	// assumedEventHours is charged to events without concrete times
	assumedEventHours = 1.0
)

// WeeklyReport aggregates the past week's calendar activity
type WeeklyReport struct {
	EventCount  int                `json:"event_count"`
	Durations   map[string]float64 `json:"durations_hours"` // hours per event title
	CountsByDay map[string]int     `json:"counts_by_day"`   // events per weekday (Mon, Tue, ...)
	Summary     string             `json:"summary,omitempty"`
}

// WeeklyReport lists the past seven days of events and aggregates time
// spent per title and event counts per weekday, with a model-written
// narrative when a provider is available.
func (h *Handler) WeeklyReport(ctx context.Context) (*WeeklyReport, error) {
	httpClient, err := h.credentials.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	client := NewClient(httpClient, h.baseURL, h.calendarID)
	events, err := client.ListEvents(ctx, now.Add(-reportWindow), now)
	if err != nil {
		return nil, err
	}

	report := aggregateEvents(events)
	if report.EventCount == 0 {
		return report, nil
	}

	summary, err := h.summarizeReport(ctx, report)
	if err != nil {
		// The narrative is garnish; the numbers still stand.
		h.logger.Warn("report_summary_failed", zap.Error(err))
	} else {
		report.Summary = summary
	}
	return report, nil
}

func aggregateEvents(events []APIEvent) *WeeklyReport {
	report := &WeeklyReport{
		EventCount:  len(events),
		Durations:   make(map[string]float64),
		CountsByDay: make(map[string]int),
	}

	for _, ev := range events {
		title := ev.Summary
		if title == "" {
			title = "Untitled"
		}

		start, startErr := time.Parse(time.RFC3339, ev.Start.DateTime)
		end, endErr := time.Parse(time.RFC3339, ev.End.DateTime)
		if startErr == nil && endErr == nil {
			report.Durations[title] += end.Sub(start).Hours()
		} else {
			report.Durations[title] += assumedEventHours
		}

		if startErr == nil {
			report.CountsByDay[start.Format("Mon")]++
		}
	}
	return report
}

func (h *Handler) summarizeReport(ctx context.Context, report *WeeklyReport) (string, error) {
	titles := make([]string, 0, len(report.Durations))
	for title := range report.Durations {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	var b strings.Builder
	for _, title := range titles {
		fmt.Fprintf(&b, "- %s: %.1f hours\n", title, report.Durations[title])
	}

	prompt := fmt.Sprintf(
		"Summarize this week's calendar in two or three sentences. %d events. Time per activity:\n%s",
		report.EventCount, b.String(),
	)
	return h.provider.Generate(ctx, "", prompt, genai.GenerateOptions{})
}
