package router

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// generateStub returns a canned response and records the prompt it saw
type generateStub struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
	lastOpts   genai.GenerateOptions
}

func (s *generateStub) Generate(ctx context.Context, system, prompt string, opts genai.GenerateOptions) (string, error) {
	s.lastSystem = system
	s.lastPrompt = prompt
	s.lastOpts = opts
	return s.response, s.err
}

func (s *generateStub) GenerateVision(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	return "", errors.New("not implemented")
}

func TestClassify_Receipt(t *testing.T) {
	t.Parallel()

	stub := &generateStub{
		response: `{"agent": "FinanceAgent", "confidence": 0.93, "content": "boba shop receipt"}`,
	}
	c := New(stub, nil)

	decision, err := c.Classify(context.Background(), "Boba & Brew receipt — Lychee $6.25, Tax $0.54, Total $6.79")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if decision.Agent != models.AgentFinance {
		t.Errorf("Agent = %q, want FinanceAgent", decision.Agent)
	}
	if decision.Confidence < 0.5 {
		t.Errorf("Confidence = %f, want >= 0.5", decision.Confidence)
	}
	if !stub.lastOpts.JSONMode {
		t.Error("expected JSON mode to be requested")
	}
}

func TestClassify_TruncatesLongInput(t *testing.T) {
	t.Parallel()

	stub := &generateStub{
		response: `{"agent": "NoteAgent", "confidence": 0.8, "content": "long document"}`,
	}
	c := New(stub, nil)

	long := strings.Repeat("a", MaxInputChars+500)
	if _, err := c.Classify(context.Background(), long); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	// "Text:\n" prefix plus at most MaxInputChars of payload.
	if got, want := len(stub.lastPrompt), len("Text:\n")+MaxInputChars; got != want {
		t.Errorf("prompt length = %d, want %d", got, want)
	}
}

func TestClassify_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	stub := &generateStub{
		response: `{"agent": "NoteAgent", "confidence": 0.8, "content": "long document"}`,
	}
	c := New(stub, nil)

	long := strings.Repeat("é", MaxInputChars+10)
	if _, err := c.Classify(context.Background(), long); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	payload := strings.TrimPrefix(stub.lastPrompt, "Text:\n")
	if !utf8.ValidString(payload) {
		t.Error("truncated prompt is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(payload); got != MaxInputChars {
		t.Errorf("prompt rune count = %d, want %d", got, MaxInputChars)
	}
}

func TestClassify_RepairsAlmostJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     models.Agent
	}{
		{
			name:     "fenced code block",
			response: "```json\n{\"agent\": \"TaskAgent\", \"confidence\": 0.7, \"content\": \"homework\"}\n```",
			want:     models.AgentTask,
		},
		{
			name:     "trailing comma",
			response: `{"agent": "EventAgent", "confidence": 0.9, "content": "dinner",}`,
			want:     models.AgentEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(&generateStub{response: tt.response}, nil)
			decision, err := c.Classify(context.Background(), "anything")
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if decision.Agent != tt.want {
				t.Errorf("Agent = %q, want %q", decision.Agent, tt.want)
			}
		})
	}
}

func TestClassify_MalformedResponse(t *testing.T) {
	t.Parallel()

	c := New(&generateStub{response: "I could not decide, sorry!"}, nil)

	_, err := c.Classify(context.Background(), "anything")
	var malformed *models.MalformedClassificationError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedClassificationError", err)
	}
}

func TestClassify_UnknownAgentName(t *testing.T) {
	t.Parallel()

	c := New(&generateStub{
		response: `{"agent": "WeatherAgent", "confidence": 0.99, "content": "forecast"}`,
	}, nil)

	decision, err := c.Classify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if decision.Agent != models.AgentUnknown {
		t.Errorf("Agent = %q, want AgentUnknown", decision.Agent)
	}
}

func TestClassify_ModelFailure(t *testing.T) {
	t.Parallel()

	c := New(&generateStub{err: errors.New("upstream down")}, nil)

	_, err := c.Classify(context.Background(), "anything")
	var genErr *models.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}
