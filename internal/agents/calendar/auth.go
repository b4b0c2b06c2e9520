package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/geminidesk/geminidesk/internal/models"
)

// Scope is the single calendar scope the handler requires. The cached
// token must carry exactly this scope set or consent is re-run.
const Scope = "https://www.googleapis.com/auth/calendar"

// consentPort is the fixed local port for the OAuth callback listener
const consentPort = 8080

// CredentialSource yields an authenticated HTTP client for the calendar API
type CredentialSource interface {
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// cachedToken is the on-disk token blob: the OAuth grant plus the scopes
// it was issued for. The file is read at handler start and rewritten after
// refresh or fresh consent. There is no file locking; concurrent refreshes
// racing on this file are a known hazard.
type cachedToken struct {
	*oauth2.Token
	Scopes []string `json:"scopes"`
}

// TokenManager implements CredentialSource against a client-secrets file
// and a token cache file.
type TokenManager struct {
	credentialsFile string
	tokenFile       string
	logger          *zap.Logger
}

// NewTokenManager creates a token manager over the given credential files
func NewTokenManager(credentialsFile, tokenFile string, log *zap.Logger) *TokenManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenManager{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
		logger:          log,
	}
}

// HTTPClient resolves calendar credentials: cached token when valid,
// refresh when expired-but-refreshable, interactive consent otherwise.
func (m *TokenManager) HTTPClient(ctx context.Context) (*http.Client, error) {
	conf, err := m.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := m.loadToken()
	if err == nil && scopesMatch(tok.Scopes, []string{Scope}) {
		if tok.Valid() {
			return oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok.Token)), nil
		}
		if tok.RefreshToken != "" {
			refreshed, refreshErr := conf.TokenSource(ctx, tok.Token).Token()
			if refreshErr == nil {
				if saveErr := m.saveToken(refreshed); saveErr != nil {
					m.logger.Warn("failed_to_persist_refreshed_token", zap.Error(saveErr))
				}
				return oauth2.NewClient(ctx, oauth2.StaticTokenSource(refreshed)), nil
			}
			m.logger.Warn("token_refresh_failed", zap.Error(refreshErr))
		}
	}

	fresh, err := m.runConsentFlow(ctx, conf)
	if err != nil {
		return nil, &models.AuthError{Service: "calendar", Message: err.Error(), Err: err}
	}
	if err := m.saveToken(fresh); err != nil {
		m.logger.Warn("failed_to_persist_token", zap.Error(err))
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(fresh)), nil
}

func (m *TokenManager) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(m.credentialsFile)
	if err != nil {
		return nil, &models.AuthError{
			Service: "calendar",
			Message: fmt.Sprintf("cannot read client secrets file %s", m.credentialsFile),
			Err:     err,
		}
	}
	conf, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, &models.AuthError{Service: "calendar", Message: "invalid client secrets file", Err: err}
	}
	return conf, nil
}

func (m *TokenManager) loadToken() (*cachedToken, error) {
	data, err := os.ReadFile(m.tokenFile)
	if err != nil {
		return nil, err
	}
	var tok cachedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	if tok.Token == nil {
		return nil, fmt.Errorf("token file %s holds no token", m.tokenFile)
	}
	return &tok, nil
}

func (m *TokenManager) saveToken(tok *oauth2.Token) error {
	blob := cachedToken{Token: tok, Scopes: []string{Scope}}
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return os.WriteFile(m.tokenFile, data, 0o600)
}

// runConsentFlow starts a one-shot local callback server, prints the
// consent URL, and exchanges the returned code for a token.
func (m *TokenManager) runConsentFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", consentPort))
	if err != nil {
		return nil, fmt.Errorf("cannot bind consent callback port %d: %w", consentPort, err)
	}
	defer listener.Close()

	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/", consentPort)
	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	m.logger.Info("calendar_consent_required", zap.String("auth_url", authURL))
	fmt.Printf("Open the following URL to grant calendar access:\n%s\n", authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				errCh <- fmt.Errorf("consent state mismatch")
				return
			}
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "missing code", http.StatusBadRequest)
				errCh <- fmt.Errorf("consent response carried no code")
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
			codeCh <- code
		}),
	}
	go func() {
		if serveErr := srv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
	}()
	defer srv.Close()

	select {
	case code := <-codeCh:
		return conf.Exchange(ctx, code)
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// scopesMatch reports whether the two scope sets are exactly equal
func scopesMatch(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}
