package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/logger"
)

const (
	// DefaultModel is the default generation model
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the default API base URL. Any OpenAI-compatible
	// endpoint works here, including Gemini's compatibility surface.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the timeout for plain text generation calls
	DefaultTimeout = 30 * time.Second
	// VisionTimeout is the longer timeout for calls carrying attachments
	VisionTimeout = 60 * time.Second

	// DefaultTemperature keeps extraction and classification nearly deterministic
	DefaultTemperature = 0.2

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenAIProvider implements Provider against any OpenAI-compatible API
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIProvider creates a provider with default base URL and no logger
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultBaseURL, model, nil, false)
}

// NewOpenAIProviderWithLogger creates a provider with logger support
func NewOpenAIProviderWithLogger(apiKey, baseURL, model string, log *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: VisionTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    log,
		debugMode: debugMode,
	}
}

// RegisterOpenAI registers the OpenAI-compatible factory on a registry
func RegisterOpenAI(registry *ProviderRegistry) {
	registry.Register("openai", func(config map[string]string) (Provider, error) {
		apiKey := config["api_key"]
		if apiKey == "" {
			return nil, errors.New("api_key is required for the openai provider")
		}
		return NewOpenAIProviderWithLogger(apiKey, config["base_url"], config["model"], nil, false), nil
	})
}

// Generate sends one prompt and returns the model's text response
func (p *OpenAIProvider) Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	req := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(DefaultTemperature),
	}
	if opts.JSONMode {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return p.send(ctx, "generate", prompt, req, option.WithRequestTimeout(DefaultTimeout))
}

// GenerateVision sends a prompt plus one inline attachment. Images travel
// as data-URL image parts; PDFs as file parts, which OpenAI-compatible
// endpoints accept for single-page documents.
func (p *OpenAIProvider) GenerateVision(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	var attachment openai.ChatCompletionContentPartUnionParam
	if strings.HasPrefix(mimeType, "image/") {
		attachment = openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		})
	} else {
		attachment = openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String(dataURL),
			Filename: openai.String("attachment.pdf"),
		})
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{openai.TextContentPart(prompt), attachment}),
	}

	req := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(DefaultTemperature),
	}

	return p.send(ctx, "generate_vision", prompt, req, option.WithRequestTimeout(VisionTimeout))
}

func (p *OpenAIProvider) send(ctx context.Context, operation, prompt string, req openai.ChatCompletionNewParams, opts ...option.RequestOption) (string, error) {
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt_preview", logger.SanitizeDebugContent(prompt)),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req, opts...)
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", operation),
				zap.String("model", p.model),
				zap.Error(err),
				zap.Duration("latency", latency),
			)
		}
		if apiErr := ExtractAPIError(err); apiErr != nil {
			return "", fmt.Errorf("%s failed: %w", operation, apiErr)
		}
		return "", fmt.Errorf("%s failed: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}
	content := resp.Choices[0].Message.Content

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", logger.SanitizeDebugContent(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return strings.TrimSpace(content), nil
}
