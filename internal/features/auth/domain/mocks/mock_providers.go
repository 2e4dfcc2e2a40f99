package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"amadeus-cli/internal/features/auth/domain"
)

// MockTokenStore is a mock implementation of domain.TokenStore
type MockTokenStore struct {
	mock.Mock
}

// Load mocks the Load method
func (m *MockTokenStore) Load() (*domain.CachedToken, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CachedToken), args.Error(1)
}

// Save mocks the Save method
func (m *MockTokenStore) Save(token domain.CachedToken) error {
	args := m.Called(token)
	return args.Error(0)
}

// MockHTTPClient is a mock implementation of domain.HTTPClient
type MockHTTPClient struct {
	mock.Mock
}

// Request mocks the Request method
func (m *MockHTTPClient) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	args := m.Called(ctx, method, url, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// ReadResponseBody mocks the ReadResponseBody method
func (m *MockHTTPClient) ReadResponseBody(resp *http.Response) ([]byte, error) {
	args := m.Called(resp)
	return args.Get(0).([]byte), args.Error(1)
}

// MockTokenProvider is a mock implementation of domain.TokenProvider
type MockTokenProvider struct {
	mock.Mock
}

// GetAccessToken mocks the GetAccessToken method
func (m *MockTokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// RefreshToken mocks the RefreshToken method
func (m *MockTokenProvider) RefreshToken(ctx context.Context) (domain.CachedToken, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CachedToken), args.Error(1)
}
