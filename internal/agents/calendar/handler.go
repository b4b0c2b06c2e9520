// Package calendar turns free text into structured events and inserts
// them into the user's calendar.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// DraftPrompt is the fixed event extraction instruction
const DraftPrompt = `You are an intelligent calendar assistant.
Analyze the following text and extract structured event data.

Return a JSON object with fields:
title, start_time, end_time, duration_minutes, recurrence, location, participants, notes, created_at.
Times are ISO8601. If uncertain about any field, leave it null.`

// Handler is the calendar agent. Every failure is folded into the result;
// HandleEvent never returns an error to its caller.
type Handler struct {
	provider    genai.Provider
	credentials CredentialSource
	baseURL     string
	calendarID  string
	timezone    string
	logger      *zap.Logger
	now         func() time.Time
}

// NewHandler creates the calendar handler
func NewHandler(provider genai.Provider, credentials CredentialSource, baseURL, calendarID, timezone string, log *zap.Logger) *Handler {
	if timezone == "" {
		timezone = "America/Los_Angeles"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		provider:    provider,
		credentials: credentials,
		baseURL:     baseURL,
		calendarID:  calendarID,
		timezone:    timezone,
		logger:      log,
		now:         time.Now,
	}
}

// HandleEvent drafts an event from text and inserts it into the calendar
func (h *Handler) HandleEvent(ctx context.Context, text string) *models.EventInsertResult {
	draft, err := h.draftEvent(ctx, text)
	if err != nil {
		h.logger.Error("event_draft_failed", zap.Error(err))
		return &models.EventInsertResult{Error: err.Error()}
	}

	httpClient, err := h.credentials.HTTPClient(ctx)
	if err != nil {
		h.logger.Error("calendar_auth_failed", zap.Error(err))
		return &models.EventInsertResult{Error: err.Error()}
	}

	body := h.buildBody(draft)
	client := NewClient(httpClient, h.baseURL, h.calendarID)
	created, err := client.InsertEvent(ctx, body)
	if err != nil {
		h.logger.Error("event_insert_failed", zap.Error(err))
		return &models.EventInsertResult{Error: err.Error()}
	}

	h.logger.Info("event_created",
		zap.String("summary", body.Summary),
		zap.String("link", created.HTMLLink),
	)

	return &models.EventInsertResult{
		CalendarURL: created.HTMLLink,
		EventID:     created.ID,
	}
}

// draftEvent asks the model for a structured event and fills the local
// defaults the model tends to leave out.
func (h *Handler) draftEvent(ctx context.Context, text string) (*models.CalendarEvent, error) {
	response, err := h.provider.Generate(ctx, DraftPrompt, fmt.Sprintf("Input: %q", text), genai.GenerateOptions{JSONMode: true})
	if err != nil {
		return nil, &models.GenerationError{Operation: "event_draft", Message: err.Error(), Err: err}
	}

	var draft models.CalendarEvent
	if err := json.Unmarshal([]byte(response), &draft); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(response)
		if repairErr != nil {
			return nil, &models.GenerationError{Operation: "event_draft", Message: "unparseable event draft", Err: err}
		}
		if err := json.Unmarshal([]byte(repaired), &draft); err != nil {
			return nil, &models.GenerationError{Operation: "event_draft", Message: "unparseable event draft", Err: err}
		}
	}

	if draft.CreatedAt == "" {
		draft.CreatedAt = h.now().Format(time.RFC3339)
	}
	if draft.Notes == "" {
		draft.Notes = text
	}
	if draft.Title == "" {
		draft.Title = "Untitled Event"
	}
	return &draft, nil
}

// buildBody maps the draft onto the insert request with the fixed
// timezone and the derived start/end window.
func (h *Handler) buildBody(draft *models.CalendarEvent) *EventBody {
	start, end := draft.Window(h.now())

	body := &EventBody{
		Summary:     draft.Title,
		Description: draft.Notes,
		Start:       EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: h.timezone},
		End:         EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: h.timezone},
		Location:    draft.Location,
	}
	if rule, ok := NormalizeRecurrence(draft.Recurrence); ok {
		body.Recurrence = []string{rule}
	}
	return body
}
