package genai

import (
	"errors"
	"testing"
)

func TestExtractAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantNil     bool
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:    "nil error",
			err:     nil,
			wantNil: true,
		},
		{
			name:    "plain error without API detail",
			err:     errors.New("connection refused"),
			wantNil: true,
		},
		{
			name:       "status code without JSON body",
			err:        errors.New("unexpected status 429 from upstream"),
			wantStatus: 429,
		},
		{
			name:        "status code with JSON detail",
			err:         errors.New(`429 {"message": "quota hit", "type": "rate_limit_error", "code": "insufficient_quota"}`),
			wantStatus:  429,
			wantCode:    "insufficient_quota",
			wantMessage: "quota hit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractAPIError(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("ExtractAPIError = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ExtractAPIError = nil, want non-nil")
			}
			if got.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", got.StatusCode, tt.wantStatus)
			}
			if tt.wantCode != "" && got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry()
	RegisterOpenAI(registry)

	if _, err := registry.GetProvider("nope", nil); err == nil {
		t.Error("expected error for unregistered provider")
	}

	if _, err := registry.GetProvider("openai", map[string]string{}); err == nil {
		t.Error("expected error for missing api_key")
	}

	p, err := registry.GetProvider("openai", map[string]string{"api_key": "k"})
	if err != nil {
		t.Fatalf("GetProvider(openai) error = %v", err)
	}
	if p == nil {
		t.Fatal("GetProvider(openai) returned nil provider")
	}
}
