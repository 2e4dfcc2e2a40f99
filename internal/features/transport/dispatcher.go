package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"amadeus-cli/internal/common"
)

// Envelope is the `{data, dictionaries, meta}` response wrapper every
// Amadeus endpoint returns on success.
type Envelope struct {
	Data         json.RawMessage `json:"data"`
	Dictionaries json.RawMessage `json:"dictionaries"`
	Meta         json.RawMessage `json:"meta"`

	// Raw is the unmodified response body
	Raw []byte `json:"-"`
}

// errorEnvelope is the upstream error payload
type errorEnvelope struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// TokenProvider supplies the bearer token attached to outgoing calls
type TokenProvider interface {
	GetAccessToken(ctx context.Context) (string, error)
}

// HTTPClient defines the contract for the underlying HTTP transport
type HTTPClient interface {
	Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error)
	ReadResponseBody(resp *http.Response) ([]byte, error)
}

// Caller is the request surface the endpoint services build on
type Caller interface {
	Get(ctx context.Context, path string, query url.Values, options ...CallOption) (*Envelope, error)
	Post(ctx context.Context, path string, body any, options ...CallOption) (*Envelope, error)
}

// Config holds dispatcher configuration
type Config struct {
	// BaseURL is the upstream host
	BaseURL string

	// ReadTimeout bounds reference-data calls
	ReadTimeout time.Duration

	// SearchTimeout bounds search and pricing calls
	SearchTimeout time.Duration

	// MaxAttempts is the rate-limit retry ceiling
	MaxAttempts int
}

// Dispatcher issues authenticated API calls with bounded retry on rate
// limiting. Auth and validation failures are never retried; they surface
// as typed errors from the common package. Logging goes through the
// logger carried by the call context.
type Dispatcher struct {
	config     Config
	tokens     TokenProvider
	httpClient HTTPClient
	newBackOff func() backoff.BackOff
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithBackOffFactory overrides the retry wait policy, used by tests to
// avoid real sleeps
func WithBackOffFactory(factory func() backoff.BackOff) DispatcherOption {
	return func(d *Dispatcher) {
		d.newBackOff = factory
	}
}

// NewDispatcher creates a new request dispatcher
func NewDispatcher(
	config Config,
	tokens TokenProvider,
	httpClient HTTPClient,
	options ...DispatcherOption,
) *Dispatcher {
	if tokens == nil {
		panic("token provider cannot be nil")
	}
	if httpClient == nil {
		panic("HTTP client cannot be nil")
	}

	dispatcher := &Dispatcher{
		config:     config,
		tokens:     tokens,
		httpClient: httpClient,
		newBackOff: defaultBackOff,
	}

	for _, option := range options {
		option(dispatcher)
	}

	return dispatcher
}

// defaultBackOff doubles the wait on each rate-limited attempt: 1s, 2s, 4s...
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 64 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// callSettings holds per-call options
type callSettings struct {
	timeout time.Duration
}

// CallOption configures a single dispatcher call
type CallOption func(*callSettings)

// WithSearchTimeout applies the search budget to a call; search and
// pricing payloads are heavier than reference data
func WithSearchTimeout() CallOption {
	return func(s *callSettings) {
		s.timeout = -1
	}
}

// Get issues an authenticated GET request
func (d *Dispatcher) Get(ctx context.Context, path string, query url.Values, options ...CallOption) (*Envelope, error) {
	u := d.buildURL(path, query)
	return d.execute(ctx, http.MethodGet, u, nil, d.resolveTimeout(d.config.ReadTimeout, options))
}

// Post issues an authenticated POST request with a JSON body
func (d *Dispatcher) Post(ctx context.Context, path string, body any, options ...CallOption) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, common.WrapError(err, "failed to encode request body")
	}

	u := d.buildURL(path, nil)
	return d.execute(ctx, http.MethodPost, u, payload, d.resolveTimeout(d.config.SearchTimeout, options))
}

func (d *Dispatcher) buildURL(path string, query url.Values) string {
	u := strings.TrimSuffix(d.config.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (d *Dispatcher) resolveTimeout(fallback time.Duration, options []CallOption) time.Duration {
	settings := callSettings{timeout: fallback}
	for _, option := range options {
		option(&settings)
	}
	if settings.timeout == -1 {
		return d.config.SearchTimeout
	}
	return settings.timeout
}

// execute performs one call with the retry policy: HTTP 429 retries with
// exponential backoff up to the attempt ceiling, everything else resolves
// on the first response.
func (d *Dispatcher) execute(ctx context.Context, method, url string, body []byte, timeout time.Duration) (*Envelope, error) {
	token, err := d.tokens.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	if method == http.MethodPost {
		headers["Content-Type"] = "application/json"
	}

	var envelope *Envelope
	operation := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		resp, err := d.httpClient.Request(callCtx, method, url, body, headers)
		if err != nil {
			if common.IsContextCanceled(err) {
				return backoff.Permanent(err)
			}
			return backoff.Permanent(common.NetworkError("%s %s failed: %v", method, url, err))
		}

		respBody, err := d.httpClient.ReadResponseBody(resp)
		if err != nil {
			return backoff.Permanent(common.NetworkError("failed to read response: %v", err))
		}

		result, err := classify(resp.StatusCode, respBody)
		if err != nil {
			return err
		}

		envelope = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(d.newBackOff(), uint64(d.config.MaxAttempts-1)), ctx)

	logger := common.LoggerFromContext(ctx)
	err = backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		logger.Warn("rate limited, backing off",
			"method", method,
			"wait", wait.String())
	})
	if err != nil {
		if common.IsRateLimited(err) {
			return nil, common.NewRetriesExhaustedError(d.config.MaxAttempts)
		}
		return nil, err
	}

	return envelope, nil
}

// classify maps one HTTP response to an envelope or a typed error.
// Only the rate-limited case is retryable.
func classify(statusCode int, body []byte) (*Envelope, error) {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return nil, common.ErrRateLimited

	case statusCode == http.StatusUnauthorized:
		return nil, backoff.Permanent(common.AuthError(
			"check AMADEUS_API_KEY and AMADEUS_API_SECRET"))

	case statusCode == http.StatusBadRequest:
		return nil, backoff.Permanent(common.NewClientRequestError(errorDetail(body)))

	case statusCode < 200 || statusCode >= 300:
		return nil, backoff.Permanent(common.NewServerResponseError(statusCode, string(body)))
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, backoff.Permanent(common.WrapError(err, "failed to parse response body"))
	}
	envelope.Raw = body

	return &envelope, nil
}

// errorDetail extracts the first structured error detail from an error
// payload, falling back to the raw body text
func errorDetail(body []byte) string {
	var payload errorEnvelope
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		first := payload.Errors[0]
		if first.Detail != "" {
			return first.Detail
		}
		if first.Title != "" {
			return first.Title
		}
	}
	return string(body)
}
