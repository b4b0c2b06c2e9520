// Package pipeline runs the full ingest flow: extract, classify,
// dispatch. It exists so the HTTP API and the CLI share one code path.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/models"
)

// Extractor converts a file artifact to text
type Extractor interface {
	Extract(ctx context.Context, path string) (models.ExtractedContent, error)
}

// Classifier produces a routing decision for text
type Classifier interface {
	Classify(ctx context.Context, text string) (models.RoutingDecision, error)
}

// Router hands a decision to its downstream handler
type Router interface {
	Dispatch(ctx context.Context, decision models.RoutingDecision, text, artifact string) models.HandlerResult
}

// Step is one pipeline stage's outcome, surfaced to callers so API
// responses and CLI output can show where a request went.
type Step struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Result is the full pipeline outcome for one request
type Result struct {
	Steps    []Step                 `json:"steps"`
	Decision models.RoutingDecision `json:"decision"`
	Handler  models.HandlerResult   `json:"handler"`
}

// Pipeline wires the three stages together
type Pipeline struct {
	extractor  Extractor
	classifier Classifier
	router     Router
	logger     *zap.Logger
}

// New creates the pipeline. The extractor may be nil when only text
// input will ever be run.
func New(extractor Extractor, classifier Classifier, router Router, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		classifier: classifier,
		router:     router,
		logger:     log,
	}
}

// RunText classifies and dispatches literal text
func (p *Pipeline) RunText(ctx context.Context, text string) (*Result, error) {
	return p.run(ctx, text, "")
}

// RunFile extracts a file to text, then classifies and dispatches it.
// The artifact path travels with the request so the note handler can
// fall back to the file name for titling.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	if p.extractor == nil {
		return nil, fmt.Errorf("file input is not supported: no extractor configured")
	}

	result := &Result{}
	content, err := p.extractor.Extract(ctx, path)
	if err != nil {
		result.Steps = append(result.Steps, Step{Stage: "extract", Error: logger.SanitizeError(err)})
		return result, err
	}
	result.Steps = append(result.Steps, Step{
		Stage:  "extract",
		Detail: fmt.Sprintf("%s artifact, %d chars", content.Mime, len(content.Text)),
	})

	return p.classifyAndDispatch(ctx, result, content.Text, path)
}

func (p *Pipeline) run(ctx context.Context, text, artifact string) (*Result, error) {
	return p.classifyAndDispatch(ctx, &Result{}, text, artifact)
}

func (p *Pipeline) classifyAndDispatch(ctx context.Context, result *Result, text, artifact string) (*Result, error) {
	decision, err := p.classifier.Classify(ctx, text)
	if err != nil {
		result.Steps = append(result.Steps, Step{Stage: "classify", Error: logger.SanitizeError(err)})
		return result, err
	}
	result.Decision = decision
	result.Steps = append(result.Steps, Step{
		Stage:  "classify",
		Detail: fmt.Sprintf("%s (confidence %.2f)", decision.Agent, decision.Confidence),
	})

	handled := p.router.Dispatch(ctx, decision, text, artifact)
	result.Handler = handled
	step := Step{Stage: "dispatch", Detail: string(handled.Outcome)}
	if handled.Error != "" {
		step.Error = handled.Error
	}
	result.Steps = append(result.Steps, step)

	p.logger.Info("pipeline_complete",
		zap.String("agent", string(decision.Agent)),
		zap.String("outcome", string(handled.Outcome)),
	)
	return result, nil
}
