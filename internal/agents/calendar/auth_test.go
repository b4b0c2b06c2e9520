package calendar

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

const testClientSecrets = `{
  "installed": {
    "client_id": "test-client",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"],
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token"
  }
}`

func writeAuthFixtures(t *testing.T, token *cachedToken) (credFile, tokenFile string) {
	t.Helper()

	dir := t.TempDir()
	credFile = filepath.Join(dir, "credentials.json")
	tokenFile = filepath.Join(dir, "token.json")

	if err := os.WriteFile(credFile, []byte(testClientSecrets), 0o600); err != nil {
		t.Fatalf("failed to write credentials fixture: %v", err)
	}
	if token != nil {
		data, err := json.Marshal(token)
		if err != nil {
			t.Fatalf("failed to marshal token fixture: %v", err)
		}
		if err := os.WriteFile(tokenFile, data, 0o600); err != nil {
			t.Fatalf("failed to write token fixture: %v", err)
		}
	}
	return credFile, tokenFile
}

func TestTokenManager_CachedValidToken(t *testing.T) {
	t.Parallel()

	credFile, tokenFile := writeAuthFixtures(t, &cachedToken{
		Token:  &oauth2.Token{AccessToken: "cached-access-token"},
		Scopes: []string{Scope},
	})

	m := NewTokenManager(credFile, tokenFile, nil)
	client, err := m.HTTPClient(context.Background())
	if err != nil {
		t.Fatalf("HTTPClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("HTTPClient() returned nil client")
	}
}

func TestTokenManager_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	credFile, tokenFile := writeAuthFixtures(t, nil)
	m := NewTokenManager(credFile, tokenFile, nil)

	if err := m.saveToken(&oauth2.Token{AccessToken: "abc", RefreshToken: "def"}); err != nil {
		t.Fatalf("saveToken() error = %v", err)
	}

	tok, err := m.loadToken()
	if err != nil {
		t.Fatalf("loadToken() error = %v", err)
	}
	if tok.AccessToken != "abc" || tok.RefreshToken != "def" {
		t.Errorf("loaded token = %+v, want saved values", tok.Token)
	}
	if !scopesMatch(tok.Scopes, []string{Scope}) {
		t.Errorf("Scopes = %v, want [%s]", tok.Scopes, Scope)
	}
}

func TestTokenManager_MissingCredentialsFile(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("/nonexistent/credentials.json", "/nonexistent/token.json", nil)
	if _, err := m.HTTPClient(context.Background()); err == nil {
		t.Fatal("expected error for missing client secrets file")
	}
}

func TestLoadToken_RejectsEmptyBlob(t *testing.T) {
	t.Parallel()

	credFile, tokenFile := writeAuthFixtures(t, nil)
	if err := os.WriteFile(tokenFile, []byte(`{"scopes": []}`), 0o600); err != nil {
		t.Fatalf("failed to write token file: %v", err)
	}

	m := NewTokenManager(credFile, tokenFile, nil)
	if _, err := m.loadToken(); err == nil {
		t.Fatal("expected error for token file without token")
	}
}
