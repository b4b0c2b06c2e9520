// Package dispatch enforces the confidence threshold and hands a routing
// decision to exactly one downstream handler. It is the single boundary
// where handler failures become user-facing results instead of errors:
// a broken downstream integration must not take the pipeline down.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/models"
)

// ConfidenceThreshold is the fixed dispatch policy: decisions below it
// are skipped without invoking any handler.
const ConfidenceThreshold = 0.5

// EventHandler turns text into a calendar event. Its result always carries
// the failure message inline; it never returns an error.
type EventHandler interface {
	HandleEvent(ctx context.Context, text string) *models.EventInsertResult
}

// TaskHandler turns text into a task database record
type TaskHandler interface {
	HandleTask(ctx context.Context, text string) (*models.TaskInsertResult, error)
}

// NoteHandler archives an artifact (or literal text) in the document store
type NoteHandler interface {
	HandleNote(ctx context.Context, artifact, text, category string) (*models.DocumentInsertResult, error)
}

// FinanceHandler relays text to the external finance extraction agent
type FinanceHandler interface {
	HandleFinance(ctx context.Context, text string) map[string]any
}

// Dispatcher routes a classified request to its handler
type Dispatcher struct {
	events  EventHandler
	tasks   TaskHandler
	notes   NoteHandler
	finance FinanceHandler
	logger  *zap.Logger
}

// New creates a dispatcher over the four handlers. Any handler may be nil;
// dispatching to a nil handler reports an error result.
func New(events EventHandler, tasks TaskHandler, notes NoteHandler, finance FinanceHandler, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		events:  events,
		tasks:   tasks,
		notes:   notes,
		finance: finance,
		logger:  log,
	}
}

// Dispatch invokes the handler named by the decision, or nothing at all
// when confidence is below threshold or the agent is unknown. Handler
// errors are logged and folded into the result; they never propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, decision models.RoutingDecision, text, artifact string) models.HandlerResult {
	if decision.Confidence < ConfidenceThreshold {
		d.logger.Info("dispatch_skipped",
			zap.String("agent", string(decision.Agent)),
			zap.Float64("confidence", decision.Confidence),
		)
		return models.HandlerResult{Agent: decision.Agent, Outcome: models.OutcomeSkipped}
	}

	if !decision.Agent.IsKnown() {
		d.logger.Warn("dispatch_unknown_agent",
			zap.String("agent", string(decision.Agent)),
		)
		return models.HandlerResult{Agent: decision.Agent, Outcome: models.OutcomeUnknownAgent}
	}

	d.logger.Info("dispatching",
		zap.String("agent", string(decision.Agent)),
		zap.Float64("confidence", decision.Confidence),
	)

	switch decision.Agent {
	case models.AgentEvent:
		return d.dispatchEvent(ctx, text)
	case models.AgentTask:
		return d.dispatchTask(ctx, text)
	case models.AgentNote:
		return d.dispatchNote(ctx, artifact, text)
	case models.AgentFinance:
		return d.dispatchFinance(ctx, text)
	default:
		return models.HandlerResult{Agent: decision.Agent, Outcome: models.OutcomeUnknownAgent}
	}
}

func (d *Dispatcher) dispatchEvent(ctx context.Context, text string) models.HandlerResult {
	if d.events == nil {
		return d.errorResult(models.AgentEvent, "calendar handler not configured")
	}
	result := d.events.HandleEvent(ctx, text)
	if result.Error != "" {
		d.logger.Error("calendar_handler_failed", zap.String("error", result.Error))
		return models.HandlerResult{
			Agent:   models.AgentEvent,
			Outcome: models.OutcomeError,
			Error:   result.Error,
			Event:   result,
		}
	}
	return models.HandlerResult{Agent: models.AgentEvent, Outcome: models.OutcomeCompleted, Event: result}
}

func (d *Dispatcher) dispatchTask(ctx context.Context, text string) models.HandlerResult {
	if d.tasks == nil {
		return d.errorResult(models.AgentTask, "task handler not configured")
	}
	result, err := d.tasks.HandleTask(ctx, text)
	if err != nil {
		d.logger.Error("task_handler_failed", zap.String("error", logger.SanitizeError(err)))
		return models.HandlerResult{Agent: models.AgentTask, Outcome: models.OutcomeError, Error: err.Error()}
	}
	return models.HandlerResult{Agent: models.AgentTask, Outcome: models.OutcomeCompleted, Task: result}
}

func (d *Dispatcher) dispatchNote(ctx context.Context, artifact, text string) models.HandlerResult {
	if d.notes == nil {
		return d.errorResult(models.AgentNote, "note handler not configured")
	}
	result, err := d.notes.HandleNote(ctx, artifact, text, "")
	if err != nil {
		d.logger.Error("note_handler_failed", zap.String("error", logger.SanitizeError(err)))
		return models.HandlerResult{Agent: models.AgentNote, Outcome: models.OutcomeError, Error: err.Error()}
	}
	return models.HandlerResult{Agent: models.AgentNote, Outcome: models.OutcomeCompleted, Document: result}
}

func (d *Dispatcher) dispatchFinance(ctx context.Context, text string) models.HandlerResult {
	if d.finance == nil {
		return d.errorResult(models.AgentFinance, "finance handler not configured")
	}
	payload := d.finance.HandleFinance(ctx, text)
	if msg, ok := payload["error"].(string); ok && msg != "" {
		d.logger.Error("finance_handler_failed", zap.String("error", msg))
		return models.HandlerResult{
			Agent:   models.AgentFinance,
			Outcome: models.OutcomeError,
			Error:   msg,
			Finance: payload,
		}
	}
	return models.HandlerResult{Agent: models.AgentFinance, Outcome: models.OutcomeCompleted, Finance: payload}
}

func (d *Dispatcher) errorResult(agent models.Agent, msg string) models.HandlerResult {
	d.logger.Error("handler_unavailable",
		zap.String("agent", string(agent)),
		zap.String("error", msg),
	)
	return models.HandlerResult{Agent: agent, Outcome: models.OutcomeError, Error: msg}
}
