package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/auth/domain"
)

const tokenPath = "/v1/security/oauth2/token"

// TokenManagerConfig holds the configuration for the token manager
type TokenManagerConfig struct {
	BaseURL    string
	Credential domain.Credential

	// Timeout bounds the token exchange request
	Timeout time.Duration
}

// TokenManager implements domain.TokenProvider. It serves tokens from the
// store while they remain valid and performs a client-credentials exchange
// otherwise. Refreshes are serialized so concurrent callers share one
// exchange.
type TokenManager struct {
	config     TokenManagerConfig
	store      domain.TokenStore
	httpClient domain.HTTPClient
	now        func() time.Time
	mutex      sync.Mutex
}

// Option configures a TokenManager
type Option func(*TokenManager)

// WithClock overrides the time source, used by expiry tests
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

// NewTokenManager creates a new token manager
func NewTokenManager(
	config TokenManagerConfig,
	store domain.TokenStore,
	httpClient domain.HTTPClient,
	options ...Option,
) domain.TokenProvider {
	if store == nil {
		panic("token store cannot be nil")
	}
	if httpClient == nil {
		panic("HTTP client cannot be nil")
	}

	manager := &TokenManager{
		config:     config,
		store:      store,
		httpClient: httpClient,
		now:        time.Now,
	}

	for _, option := range options {
		option(manager)
	}

	return manager
}

// GetAccessToken returns a valid access token, refreshing if necessary
func (m *TokenManager) GetAccessToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if cached, err := m.store.Load(); err == nil && cached != nil && cached.Valid(m.now()) {
		return cached.AccessToken, nil
	}

	token, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a token exchange regardless of cache state
func (m *TokenManager) RefreshToken(ctx context.Context) (domain.CachedToken, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.exchange(ctx)
}

// exchange performs the OAuth client-credentials exchange and persists the
// result, replacing any prior cached value. Callers must hold the mutex.
func (m *TokenManager) exchange(ctx context.Context) (domain.CachedToken, error) {
	cred := m.config.Credential
	if cred.ClientID == "" || cred.ClientSecret == "" {
		return domain.CachedToken{}, common.CredentialError(
			"set AMADEUS_API_KEY and AMADEUS_API_SECRET")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", cred.ClientID)
	form.Set("client_secret", cred.ClientSecret)

	timeout := m.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := m.httpClient.Request(
		ctx,
		http.MethodPost,
		strings.TrimSuffix(m.config.BaseURL, "/")+tokenPath,
		[]byte(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return domain.CachedToken{}, common.WrapError(err, "token exchange request failed")
	}

	body, err := m.httpClient.ReadResponseBody(resp)
	if err != nil {
		return domain.CachedToken{}, common.WrapError(err, "failed to read token response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.CachedToken{}, common.AuthError(
			"check AMADEUS_API_KEY and AMADEUS_API_SECRET")
	case resp.StatusCode != http.StatusOK:
		return domain.CachedToken{}, common.NewServerResponseError(resp.StatusCode, string(body))
	}

	var tokenResp domain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return domain.CachedToken{}, common.WrapError(err, "failed to parse token response")
	}

	if tokenResp.AccessToken == "" {
		return domain.CachedToken{}, common.AuthError("token response missing access token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = domain.DefaultExpiresIn
	}

	tokenType := tokenResp.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	token := domain.CachedToken{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenType,
		ExpiresIn:   expiresIn,
		ExpiresAt:   m.now().Add(time.Duration(expiresIn) * time.Second).Unix(),
	}

	if err := m.store.Save(token); err != nil {
		return domain.CachedToken{}, common.WrapError(err, "failed to persist token")
	}

	return token, nil
}
