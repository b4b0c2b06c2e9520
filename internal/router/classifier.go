// Package router assigns extracted text to one of the fixed downstream
// agents with a single-shot, stateless generation call.
package router

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

const (
	// MaxInputChars bounds the prompt size; longer text is truncated
	MaxInputChars = 4000

	// SystemPrompt is the fixed classification instruction. The agent
	// names and their one-line purposes are the whole contract; the model
	// is treated as a black-box oracle.
	SystemPrompt = `You are a document classifier. Analyze the following text and decide the best agent:
- NoteAgent: organizes notes
- FinanceAgent: extracts receipts and budgets
- TaskAgent: schedules tasks
- EventAgent: adds events to calendar

Return JSON only in this format:
{"agent": "<AgentName>", "confidence": <float>, "content": "<short description>"}`
)

// Classifier routes text to downstream agents
type Classifier struct {
	provider genai.Provider
	logger   *zap.Logger
}

// New creates a classifier backed by the given generation provider
func New(provider genai.Provider, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{provider: provider, logger: log}
}

// Classify sends the text to the model and parses the routing decision.
// The confidence score is model-asserted; it is trusted, not recomputed.
func (c *Classifier) Classify(ctx context.Context, text string) (models.RoutingDecision, error) {
	text = truncateRunes(text, MaxInputChars)

	response, err := c.provider.Generate(ctx, SystemPrompt, "Text:\n"+text, genai.GenerateOptions{JSONMode: true})
	if err != nil {
		return models.RoutingDecision{}, &models.GenerationError{
			Operation: "classification",
			Message:   err.Error(),
			Err:       err,
		}
	}

	decision, err := parseDecision(response)
	if err != nil {
		return models.RoutingDecision{}, err
	}

	c.logger.Debug("classified_text",
		zap.String("agent", string(decision.Agent)),
		zap.Float64("confidence", decision.Confidence),
		zap.Int("input_length", len(text)),
	)

	return decision, nil
}

// parseDecision parses the model response, repairing almost-JSON (stray
// prose, trailing commas, fenced code blocks) before giving up.
func parseDecision(response string) (models.RoutingDecision, error) {
	raw := strings.TrimSpace(response)

	var parsed struct {
		Agent      string  `json:"agent"`
		Confidence float64 `json:"confidence"`
		Content    string  `json:"content"`
	}

	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return models.RoutingDecision{}, &models.MalformedClassificationError{Raw: raw, Err: err}
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return models.RoutingDecision{}, &models.MalformedClassificationError{Raw: raw, Err: err}
		}
	}

	return models.RoutingDecision{
		Agent:      models.ParseAgent(parsed.Agent),
		Confidence: parsed.Confidence,
		Content:    parsed.Content,
	}, nil
}

// truncateRunes caps s at limit characters, never splitting a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
