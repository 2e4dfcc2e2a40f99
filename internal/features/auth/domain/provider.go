package domain

import (
	"context"
	"net/http"
)

// TokenProvider defines the interface for obtaining access tokens
type TokenProvider interface {
	// GetAccessToken returns a valid access token, refreshing if necessary
	GetAccessToken(ctx context.Context) (string, error)

	// RefreshToken forces a token exchange regardless of cache state
	RefreshToken(ctx context.Context) (CachedToken, error)
}

// TokenStore defines the interface for the persisted token record.
// Load returns (nil, nil) when no usable record exists; a corrupt or
// missing record is not an error.
type TokenStore interface {
	Load() (*CachedToken, error)
	Save(token CachedToken) error
}

// HTTPClient defines the contract for HTTP clients
type HTTPClient interface {
	// Request makes an HTTP request with the specified method, URL, body, and headers
	Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error)

	// ReadResponseBody reads and closes the response body
	ReadResponseBody(resp *http.Response) ([]byte, error)
}
