package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/agents/calendar"
	"github.com/geminidesk/geminidesk/internal/agents/finance"
	"github.com/geminidesk/geminidesk/internal/agents/note"
	"github.com/geminidesk/geminidesk/internal/agents/task"
	"github.com/geminidesk/geminidesk/internal/config"
	"github.com/geminidesk/geminidesk/internal/dispatch"
	"github.com/geminidesk/geminidesk/internal/extract"
	"github.com/geminidesk/geminidesk/internal/handlers"
	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/middleware"
	"github.com/geminidesk/geminidesk/internal/pipeline"
	"github.com/geminidesk/geminidesk/internal/router"
	"github.com/geminidesk/geminidesk/internal/services/genai"
	"github.com/geminidesk/geminidesk/internal/telemetry"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug mode for model API logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		// Sync errors on stderr are expected and ignored
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("genai_provider", cfg.GenAIProvider),
		zap.String("genai_model", cfg.GenAIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.Init(context.Background(), cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Initialize the generation model provider
	provider, err := createProvider(cfg, zapLogger, debugMode)
	if err != nil {
		zapLogger.Fatal("failed_to_create_genai_provider", zap.Error(err))
	}

	// Assemble the pipeline
	extractor := extract.New(provider, zapLogger)
	classifier := router.New(provider, zapLogger)
	dispatcher := dispatch.New(
		buildEventHandler(cfg, provider, zapLogger),
		buildTaskHandler(cfg, provider, zapLogger),
		buildNoteHandler(cfg, provider, zapLogger),
		buildFinanceHandler(cfg, zapLogger),
		zapLogger,
	)
	pipe := pipeline.New(extractor, classifier, dispatcher, zapLogger)

	// Initialize handlers
	ingestHandler := handlers.NewIngestHandler(pipe, zapLogger)
	classifyHandler := handlers.NewClassifyHandler(classifier, zapLogger)
	healthChecker := handlers.NewHealthChecker()

	// Setup router
	r := mux.NewRouter()

	zapLogger.Info("setting_up_middleware")

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware(telemetry.ServiceName))
		zapLogger.Info("otel_middleware_enabled")
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/api/v1/health", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// API v1 routes with rate limiting
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(rateLimitMW)
	apiRouter.HandleFunc("/ingest", ingestHandler.Ingest).Methods("POST")
	apiRouter.HandleFunc("/classify", classifyHandler.Classify).Methods("POST")

	// Catch-all OPTIONS handler for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   150 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// createProvider creates a generation model provider based on configuration
func createProvider(cfg *config.Config, logger *zap.Logger, debugMode bool) (genai.Provider, error) {
	providerType := cfg.GenAIProvider
	if providerType == "" {
		providerType = "openai"
	}

	// Create provider directly with logger support
	if providerType == "openai" {
		return genai.NewOpenAIProviderWithLogger(
			cfg.GenAIKey,
			cfg.GenAIBaseURL,
			cfg.GenAIModel,
			logger,
			debugMode,
		), nil
	}

	// Fallback to registry for other providers (without logger)
	registry := genai.NewProviderRegistry()
	genai.RegisterOpenAI(registry)

	config := map[string]string{
		"api_key":  cfg.GenAIKey,
		"model":    cfg.GenAIModel,
		"base_url": cfg.GenAIBaseURL,
	}

	return registry.GetProvider(providerType, config)
}

func buildEventHandler(cfg *config.Config, provider genai.Provider, logger *zap.Logger) dispatch.EventHandler {
	credentials := calendar.NewTokenManager(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, logger)
	return calendar.NewHandler(provider, credentials, cfg.CalendarBaseURL, cfg.CalendarID, cfg.CalendarTimezone, logger)
}

func buildTaskHandler(cfg *config.Config, provider genai.Provider, logger *zap.Logger) dispatch.TaskHandler {
	if cfg.NotionToken == "" || cfg.TaskDBID == "" {
		logger.Warn("task_handler_not_configured")
		return nil
	}
	return task.NewHandler(provider, task.NewPageCreator(cfg.NotionToken), cfg.TaskDBID, logger)
}

func buildNoteHandler(cfg *config.Config, provider genai.Provider, logger *zap.Logger) dispatch.NoteHandler {
	if cfg.NotionToken == "" || cfg.NotesDBID == "" {
		logger.Warn("note_handler_not_configured")
		return nil
	}
	return note.NewHandler(provider, note.NewPageCreator(cfg.NotionToken), cfg.NotesDBID, logger)
}

func buildFinanceHandler(cfg *config.Config, logger *zap.Logger) dispatch.FinanceHandler {
	if cfg.FetchAPIKey == "" || cfg.FetchAgentAddress == "" {
		logger.Warn("finance_handler_not_configured")
		return nil
	}
	return finance.NewHandler(cfg.FetchAPIKey, cfg.FetchAgentAddress, cfg.FetchBaseURL, logger)
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
