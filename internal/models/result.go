package models

// Outcome describes what the dispatcher did with a routing decision
type Outcome string

const (
	// OutcomeCompleted means a handler ran and its result is attached
	OutcomeCompleted Outcome = "completed"
	// OutcomeSkipped means confidence was below the dispatch threshold
	OutcomeSkipped Outcome = "skipped"
	// OutcomeUnknownAgent means the decision named no known handler
	OutcomeUnknownAgent Outcome = "unknown_agent"
	// OutcomeError means the chosen handler failed; Error holds the message
	OutcomeError Outcome = "error"
)

// HandlerResult is the dispatcher's uniform answer to the caller. Exactly
// one of the payload fields is set, matching the agent that ran.
type HandlerResult struct {
	Agent   Agent   `json:"agent,omitempty"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`

	Event    *EventInsertResult    `json:"event,omitempty"`
	Task     *TaskInsertResult     `json:"task,omitempty"`
	Document *DocumentInsertResult `json:"document,omitempty"`
	Finance  map[string]any        `json:"finance,omitempty"`
}
