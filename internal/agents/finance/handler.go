// Package finance relays text to the hosted finance extraction agent.
// The agent owns the parsing; this side never interprets the payload.
package finance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the hosted agent platform endpoint
	DefaultBaseURL = "https://api.agentverse.ai"
	// defaultTimeout is generous; the remote agent does its own model
	// round trips.
	defaultTimeout = 60 * time.Second

	chatProtocol        = "AgentChatProtocol"
	chatProtocolVersion = "0.3.0"
)

// envelope is the agent chat request body
type envelope struct {
	Protocol string  `json:"protocol"`
	Version  string  `json:"version"`
	Input    payload `json:"input"`
}

type payload struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Handler is the finance agent relay
type Handler struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	address    string
	logger     *zap.Logger
}

// NewHandler creates the relay for the agent at the given address.
// baseURL falls back to the hosted platform when empty.
func NewHandler(apiKey, address, baseURL string, log *zap.Logger) *Handler {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		address:    address,
		logger:     log,
	}
}

// HandleFinance forwards text to the remote agent and returns its JSON
// response verbatim. Every failure collapses to an error payload so the
// caller always gets a map back.
func (h *Handler) HandleFinance(ctx context.Context, text string) map[string]any {
	if h.apiKey == "" || h.address == "" {
		return errorPayload(errors.New("missing FETCH_API_KEY or FETCH_FINANCE_AGENT_ADDRESS configuration"))
	}

	body, err := json.Marshal(envelope{
		Protocol: chatProtocol,
		Version:  chatProtocolVersion,
		Input:    payload{Type: "text", Data: text},
	})
	if err != nil {
		return errorPayload(err)
	}

	url := fmt.Sprintf("%s/v1/agents/%s/interact", h.baseURL, h.address)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errorPayload(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("finance_relay_failed", zap.Error(err))
		return errorPayload(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorPayload(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.logger.Warn("finance_relay_rejected",
			zap.Int("status", resp.StatusCode),
		)
		return errorPayload(fmt.Errorf("finance agent returned status %d: %s", resp.StatusCode, string(data)))
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return errorPayload(fmt.Errorf("finance agent returned non-JSON response: %w", err))
	}
	return parsed
}

func errorPayload(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
