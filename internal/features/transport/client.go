package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/http2"
)

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	EnableHTTP2 bool
}

// DefaultClientConfig returns the default HTTP client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		EnableHTTP2: true,
	}
}

// Client provides a wrapper around http.Client. Deadlines are supplied
// per call through the request context rather than a client-wide timeout,
// since reference and search calls carry different budgets.
type Client struct {
	client *http.Client
	config ClientConfig
}

// NewClient creates a new HTTP client
func NewClient(config ClientConfig) (*Client, error) {
	transport := &http.Transport{}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("failed to configure HTTP/2 transport: %w", err)
		}
	}

	return &Client{
		client: &http.Client{Transport: transport},
		config: config,
	}, nil
}

// Request makes an HTTP request and returns the response
func (c *Client) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}

	return resp, nil
}

// ReadResponseBody reads and closes the response body
func (c *Client) ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
