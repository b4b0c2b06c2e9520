// Package commands implements the deskctl subcommands.
package commands

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/agents/calendar"
	"github.com/geminidesk/geminidesk/internal/agents/finance"
	"github.com/geminidesk/geminidesk/internal/agents/note"
	"github.com/geminidesk/geminidesk/internal/agents/task"
	"github.com/geminidesk/geminidesk/internal/config"
	"github.com/geminidesk/geminidesk/internal/dispatch"
	"github.com/geminidesk/geminidesk/internal/extract"
	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/pipeline"
	"github.com/geminidesk/geminidesk/internal/router"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// app wires the pipeline the same way the server does, minus the HTTP
// surface. Handlers for unconfigured integrations stay nil; the
// dispatcher reports those as error results.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	provider   genai.Provider
	extractor  *extract.Extractor
	classifier *router.Classifier
	events     *calendar.Handler
	tasks      *task.Handler
	notes      *note.Handler
	finance    *finance.Handler
	pipeline   *pipeline.Pipeline
}

func newApp(debug bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	zapLogger, err := logger.NewDevelopmentLogger(debug || cfg.ServerDebugMode)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	provider := genai.NewOpenAIProviderWithLogger(
		cfg.GenAIKey,
		cfg.GenAIBaseURL,
		cfg.GenAIModel,
		zapLogger,
		debug,
	)

	a := &app{
		cfg:        cfg,
		logger:     zapLogger,
		provider:   provider,
		extractor:  extract.New(provider, zapLogger),
		classifier: router.New(provider, zapLogger),
	}

	credentials := calendar.NewTokenManager(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, zapLogger)
	a.events = calendar.NewHandler(provider, credentials, cfg.CalendarBaseURL, cfg.CalendarID, cfg.CalendarTimezone, zapLogger)
	if cfg.NotionToken != "" && cfg.TaskDBID != "" {
		a.tasks = task.NewHandler(provider, task.NewPageCreator(cfg.NotionToken), cfg.TaskDBID, zapLogger)
	}
	if cfg.NotionToken != "" && cfg.NotesDBID != "" {
		a.notes = note.NewHandler(provider, note.NewPageCreator(cfg.NotionToken), cfg.NotesDBID, zapLogger)
	}
	if cfg.FetchAPIKey != "" && cfg.FetchAgentAddress != "" {
		a.finance = finance.NewHandler(cfg.FetchAPIKey, cfg.FetchAgentAddress, cfg.FetchBaseURL, zapLogger)
	}

	// Nil concrete handlers must stay nil interfaces so the dispatcher
	// reports them as unconfigured.
	var tasks dispatch.TaskHandler
	if a.tasks != nil {
		tasks = a.tasks
	}
	var notes dispatch.NoteHandler
	if a.notes != nil {
		notes = a.notes
	}
	var financeHandler dispatch.FinanceHandler
	if a.finance != nil {
		financeHandler = a.finance
	}

	dispatcher := dispatch.New(a.events, tasks, notes, financeHandler, zapLogger)
	a.pipeline = pipeline.New(a.extractor, a.classifier, dispatcher, zapLogger)
	return a, nil
}

func (a *app) close() {
	_ = logger.Sync(a.logger)
}

// printJSON renders a result for the terminal
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
