package genai

import (
	"context"
)

// GenerateOptions controls a single text-generation call
type GenerateOptions struct {
	// JSONMode asks the model to return a single valid JSON object
	JSONMode bool
}

// Provider is the interface to a text-generation model backend
type Provider interface {
	// Generate sends one prompt and returns the model's text response
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)

	// GenerateVision sends a prompt plus one inline binary attachment
	// (image or single-page PDF) and returns the transcription response
	GenerateVision(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// ProviderFactory creates a provider from a flat config map
type ProviderFactory func(config map[string]string) (Provider, error)

// ProviderRegistry stores available generation backends
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}

	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not registered
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "generation provider not found: " + e.Name
}
