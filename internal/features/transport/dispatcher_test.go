package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/auth/domain/mocks"
)

// staticTokens always hands out the same bearer token
type staticTokens struct{}

func (staticTokens) GetAccessToken(ctx context.Context) (string, error) {
	return "test-token", nil
}

// scriptedResponse is one canned upstream reply
type scriptedResponse struct {
	status int
	body   string
}

// scriptedClient replays canned replies in order and records each request
type scriptedClient struct {
	responses  []scriptedResponse
	requestErr error
	requests   int

	lastMethod  string
	lastURL     string
	lastBody    []byte
	lastHeaders map[string]string
}

func (c *scriptedClient) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	if c.requestErr != nil {
		c.requests++
		return nil, c.requestErr
	}
	if c.requests >= len(c.responses) {
		panic("more requests than scripted responses")
	}

	reply := c.responses[c.requests]
	c.requests++
	c.lastMethod = method
	c.lastURL = url
	c.lastBody = body
	c.lastHeaders = headers

	return &http.Response{
		StatusCode: reply.status,
		Body:       io.NopCloser(bytes.NewBufferString(reply.body)),
	}, nil
}

func (c *scriptedClient) ReadResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// noWait replaces the exponential policy so retry tests run instantly
func noWait() backoff.BackOff {
	return backoff.NewConstantBackOff(0)
}

func newTestDispatcher(client *scriptedClient) *Dispatcher {
	return NewDispatcher(Config{
		BaseURL:       "https://test.api.example.com",
		ReadTimeout:   30 * time.Second,
		SearchTimeout: 60 * time.Second,
		MaxAttempts:   3,
	}, staticTokens{}, client, WithBackOffFactory(noWait))
}

func TestGet_ParsesEnvelope(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusOK, body: `{"data":[{"id":"1"}],"dictionaries":{"carriers":{"BA":"BRITISH AIRWAYS"}}}`},
	}}
	dispatcher := newTestDispatcher(client)

	query := url.Values{}
	query.Set("originLocationCode", "LHR")

	envelope, err := dispatcher.Get(context.Background(), "/v2/shopping/flight-offers", query)
	require.NoError(t, err)

	assert.Equal(t, 1, client.requests)
	assert.Equal(t, http.MethodGet, client.lastMethod)
	assert.Equal(t, "https://test.api.example.com/v2/shopping/flight-offers?originLocationCode=LHR", client.lastURL)
	assert.Equal(t, "Bearer test-token", client.lastHeaders["Authorization"])
	assert.JSONEq(t, `[{"id":"1"}]`, string(envelope.Data))
	assert.JSONEq(t, `{"carriers":{"BA":"BRITISH AIRWAYS"}}`, string(envelope.Dictionaries))
}

func TestPost_SendsJSONBody(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusOK, body: `{"data":{}}`},
	}}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Post(context.Background(), "/v1/shopping/flight-offers/pricing",
		map[string]string{"type": "flight-offers-pricing"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, client.lastMethod)
	assert.Equal(t, "application/json", client.lastHeaders["Content-Type"])
	assert.JSONEq(t, `{"type":"flight-offers-pricing"}`, string(client.lastBody))
}

func TestGet_RetriesRateLimitThenSucceeds(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusTooManyRequests, body: ""},
		{status: http.StatusTooManyRequests, body: ""},
		{status: http.StatusOK, body: `{"data":[]}`},
	}}
	dispatcher := newTestDispatcher(client)

	envelope, err := dispatcher.Get(context.Background(), "/v1/reference-data/locations", nil)
	require.NoError(t, err)
	require.NotNil(t, envelope)
	assert.Equal(t, 3, client.requests)
}

func TestGet_RateLimitExhaustsRetries(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusTooManyRequests, body: ""},
		{status: http.StatusTooManyRequests, body: ""},
		{status: http.StatusTooManyRequests, body: ""},
	}}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Get(context.Background(), "/v1/reference-data/locations", nil)
	require.Error(t, err)

	assert.Equal(t, 3, client.requests, "the attempt ceiling bounds the request count")
	require.True(t, common.IsRetriesExhaustedError(err))

	var exhausted common.ErrRetriesExhausted
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
}

func TestGet_UnauthorizedNeverRetries(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusUnauthorized, body: `{"errors":[{"title":"Unauthorized"}]}`},
	}}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Get(context.Background(), "/v1/reference-data/airlines", nil)
	require.Error(t, err)

	assert.Equal(t, 1, client.requests, "auth failures resolve on the first response")
	assert.True(t, common.IsAuth(err))
}

func TestGet_BadRequestExtractsDetail(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusBadRequest, body: `{"errors":[{"status":400,"code":477,"title":"INVALID FORMAT","detail":"origin and destination must differ"}]}`},
	}}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Get(context.Background(), "/v2/shopping/flight-offers", nil)
	require.Error(t, err)
	assert.Equal(t, 1, client.requests)

	require.True(t, common.IsClientRequestError(err))

	var clientErr common.ErrClientRequest
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "origin and destination must differ", clientErr.Detail)
}

func TestGet_ServerErrorSurfacesStatus(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusInternalServerError, body: "upstream exploded"},
	}}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Get(context.Background(), "/v2/shopping/flight-offers", nil)
	require.Error(t, err)
	assert.Equal(t, 1, client.requests)

	require.True(t, common.IsServerResponseError(err))

	var serverErr common.ErrServerResponse
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Contains(t, serverErr.Body, "upstream exploded")
}

func TestGet_NetworkErrorNeverRetries(t *testing.T) {
	client := &scriptedClient{requestErr: errors.New("connection refused")}
	dispatcher := newTestDispatcher(client)

	_, err := dispatcher.Get(context.Background(), "/v1/reference-data/airlines", nil)
	require.Error(t, err)

	assert.Equal(t, 1, client.requests)
	assert.True(t, common.IsNetwork(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGet_TokenFailureShortCircuits(t *testing.T) {
	tokens := new(mocks.MockTokenProvider)
	tokens.On("GetAccessToken", mock.Anything).
		Return("", common.AuthError("check AMADEUS_API_KEY and AMADEUS_API_SECRET")).Once()

	client := &scriptedClient{}
	dispatcher := NewDispatcher(Config{
		BaseURL:     "https://test.api.example.com",
		MaxAttempts: 3,
	}, tokens, client, WithBackOffFactory(noWait))

	_, err := dispatcher.Get(context.Background(), "/v2/shopping/flight-offers", nil)
	require.Error(t, err)

	assert.True(t, common.IsAuth(err))
	assert.Equal(t, 0, client.requests, "no request goes out without a token")
	tokens.AssertExpectations(t)
}

func TestGet_RetryLogsThroughContextLogger(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{status: http.StatusTooManyRequests, body: ""},
		{status: http.StatusOK, body: `{"data":[]}`},
	}}
	dispatcher := newTestDispatcher(client)

	var logs bytes.Buffer
	ctx := common.ContextWithLogger(context.Background(),
		common.NewLogger(common.LoggerConfig{Output: &logs}))

	_, err := dispatcher.Get(ctx, "/v1/reference-data/locations", nil)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "rate limited, backing off")
}

func TestDefaultBackOff_DoublesEachWait(t *testing.T) {
	policy := defaultBackOff()

	assert.Equal(t, 1*time.Second, policy.NextBackOff())
	assert.Equal(t, 2*time.Second, policy.NextBackOff())
	assert.Equal(t, 4*time.Second, policy.NextBackOff())
	assert.Equal(t, 8*time.Second, policy.NextBackOff())
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "detail preferred",
			body: `{"errors":[{"title":"INVALID FORMAT","detail":"bad IATA code"}]}`,
			want: "bad IATA code",
		},
		{
			name: "title fallback",
			body: `{"errors":[{"title":"INVALID FORMAT"}]}`,
			want: "INVALID FORMAT",
		},
		{
			name: "raw body fallback",
			body: "not even json",
			want: "not even json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
