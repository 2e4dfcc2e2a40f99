package domain

import "time"

// ExpiryBuffer is subtracted from a token's lifetime when judging validity,
// covering clock skew and in-flight request latency.
const ExpiryBuffer = 60 * time.Second

// DefaultExpiresIn is assumed when the token response omits expires_in.
const DefaultExpiresIn = 1799

// Credential holds the API client credentials
type Credential struct {
	ClientID     string
	ClientSecret string
}

// CachedToken is the persisted token record
type CachedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Valid reports whether the token is usable at the given instant.
// A token within ExpiryBuffer of expiry counts as expired.
func (t CachedToken) Valid(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	return time.Unix(t.ExpiresAt, 0).After(now.Add(ExpiryBuffer))
}

// TokenResponse represents the OAuth token endpoint response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
