package models

// Agent identifies one of the fixed downstream handlers
type Agent string

const (
	// AgentEvent handles calendar events
	AgentEvent Agent = "EventAgent"
	// AgentTask handles task tracking
	AgentTask Agent = "TaskAgent"
	// AgentNote handles documents and notes
	AgentNote Agent = "NoteAgent"
	// AgentFinance handles receipts and budgets
	AgentFinance Agent = "FinanceAgent"
	// AgentUnknown is any agent name outside the fixed four
	AgentUnknown Agent = ""
)

// KnownAgents lists the four dispatchable agents in routing-prompt order
var KnownAgents = []Agent{AgentNote, AgentFinance, AgentTask, AgentEvent}

// ParseAgent maps a classifier-reported agent name to a known Agent.
// Names outside the fixed four (including empty) map to AgentUnknown.
func ParseAgent(name string) Agent {
	switch Agent(name) {
	case AgentEvent, AgentTask, AgentNote, AgentFinance:
		return Agent(name)
	default:
		return AgentUnknown
	}
}

// IsKnown reports whether the agent is one of the four dispatchable agents
func (a Agent) IsKnown() bool {
	return ParseAgent(string(a)) != AgentUnknown
}

// RoutingDecision is the classifier's verdict for one piece of text
type RoutingDecision struct {
	Agent      Agent   `json:"agent"`
	Confidence float64 `json:"confidence"`
	Content    string  `json:"content"`
}
