package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	ServerPort  string `yaml:"server_port"`
	FrontendURL string `yaml:"frontend_url"`
	EnableHSTS  bool   `yaml:"enable_hsts"`
	RateLimit   string `yaml:"rate_limit"`

	GenAIProvider string `yaml:"genai_provider"`
	GenAIKey      string `yaml:"genai_api_key"`
	GenAIBaseURL  string `yaml:"genai_base_url"`
	GenAIModel    string `yaml:"genai_model"`

	NotionToken string `yaml:"notion_token"`
	TaskDBID    string `yaml:"notion_task_db_id"`
	NotesDBID   string `yaml:"notion_notes_db_id"`

	GoogleCredentialsFile string `yaml:"google_credentials_file"`
	GoogleTokenFile       string `yaml:"google_token_file"`
	CalendarID            string `yaml:"calendar_id"`
	CalendarTimezone      string `yaml:"calendar_timezone"`
	CalendarBaseURL       string `yaml:"calendar_base_url"`

	FetchAPIKey       string `yaml:"fetch_api_key"`
	FetchAgentAddress string `yaml:"fetch_agent_address"`
	FetchBaseURL      string `yaml:"fetch_base_url"`

	ServerDebugMode bool   `yaml:"server_debug_mode"`
	OTELEnabled     bool   `yaml:"otel_enabled"`
	OTELEndpoint    string `yaml:"otel_endpoint"`
}

// Load loads configuration from an optional YAML file (GEMINIDESK_CONFIG)
// overlaid by environment variables. Environment always wins.
func Load() (*Config, error) {
	base := &Config{}
	if path := os.Getenv("GEMINIDESK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, base); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", fallback(base.ServerPort, "8080")),
		FrontendURL: getEnv("FRONTEND_URL", fallback(base.FrontendURL, "http://localhost:3000")),
		EnableHSTS:  getEnvBool("ENABLE_HSTS", base.EnableHSTS),
		RateLimit:   getEnv("RATE_LIMIT", fallback(base.RateLimit, "5-S")),

		GenAIProvider: getEnv("GENAI_PROVIDER", fallback(base.GenAIProvider, "openai")),
		GenAIKey:      getEnv("GENAI_API_KEY", base.GenAIKey),
		GenAIBaseURL:  getEnv("GENAI_BASE_URL", base.GenAIBaseURL),
		GenAIModel:    getEnv("GENAI_MODEL", base.GenAIModel),

		NotionToken: getEnv("NOTION_TOKEN", base.NotionToken),
		TaskDBID:    getEnv("NOTION_TASK_DB_ID", base.TaskDBID),
		NotesDBID:   getEnv("NOTION_NOTES_DB_ID", base.NotesDBID),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", fallback(base.GoogleCredentialsFile, "credentials.json")),
		GoogleTokenFile:       getEnv("GOOGLE_TOKEN_FILE", fallback(base.GoogleTokenFile, "token.json")),
		CalendarID:            getEnv("CALENDAR_ID", fallback(base.CalendarID, "primary")),
		CalendarTimezone:      getEnv("CALENDAR_TIMEZONE", fallback(base.CalendarTimezone, "America/Los_Angeles")),
		CalendarBaseURL:       getEnv("CALENDAR_BASE_URL", base.CalendarBaseURL),

		FetchAPIKey:       getEnv("FETCH_API_KEY", base.FetchAPIKey),
		FetchAgentAddress: getEnv("FETCH_FINANCE_AGENT_ADDRESS", base.FetchAgentAddress),
		FetchBaseURL:      getEnv("FETCH_BASE_URL", fallback(base.FetchBaseURL, "https://api.agentverse.ai")),

		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", base.ServerDebugMode),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", base.OTELEnabled),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", base.OTELEndpoint),
	}

	if cfg.GenAIKey == "" {
		return nil, fmt.Errorf("GENAI_API_KEY is required (the routing pipeline cannot run without the generation model)")
	}

	return cfg, nil
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
