package common

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrCredential indicates missing or empty API credentials
	ErrCredential = errors.New("missing credentials")

	// ErrAuth indicates the API rejected the credentials or token
	ErrAuth = errors.New("authentication failed")

	// ErrRateLimited indicates the API returned HTTP 429
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input parameter")

	// ErrNetwork indicates a transport-level failure
	ErrNetwork = errors.New("network error")
)

// IsCredential checks if err is or wraps ErrCredential
func IsCredential(err error) bool {
	return errors.Is(err, ErrCredential)
}

// IsAuth checks if err is or wraps ErrAuth
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsRateLimited checks if err is or wraps ErrRateLimited
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsInvalidInput checks if err is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNetwork checks if err is or wraps ErrNetwork
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// CredentialError returns a wrapped credential error with context
func CredentialError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCredential)
}

// AuthError returns a wrapped authentication error with context
func AuthError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrAuth)
}

// InvalidInputError returns a wrapped invalid input error with context
func InvalidInputError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// NetworkError returns a wrapped network error with context
func NetworkError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNetwork)
}

// ErrClientRequest represents an HTTP 400 rejected by the API
type ErrClientRequest struct {
	Detail string
}

func (e ErrClientRequest) Error() string {
	return fmt.Sprintf("bad request: %s", e.Detail)
}

// NewClientRequestError creates a new client request error
func NewClientRequestError(detail string) error {
	return ErrClientRequest{Detail: detail}
}

// ErrServerResponse represents a non-2xx response outside the handled cases
type ErrServerResponse struct {
	StatusCode int
	Body       string
}

func (e ErrServerResponse) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
}

// NewServerResponseError creates a new server response error
func NewServerResponseError(statusCode int, body string) error {
	return ErrServerResponse{StatusCode: statusCode, Body: body}
}

// ErrRetriesExhausted represents a rate-limit retry loop hitting its ceiling
type ErrRetriesExhausted struct {
	Attempts int
}

func (e ErrRetriesExhausted) Error() string {
	return fmt.Sprintf("max retries exceeded after %d attempts due to rate limiting", e.Attempts)
}

// NewRetriesExhaustedError creates a new retries exhausted error
func NewRetriesExhaustedError(attempts int) error {
	return ErrRetriesExhausted{Attempts: attempts}
}

// IsClientRequestError Error type checking helpers
func IsClientRequestError(err error) bool {
	var errClientRequest ErrClientRequest
	ok := errors.As(err, &errClientRequest)
	return ok
}

func IsServerResponseError(err error) bool {
	var errServerResponse ErrServerResponse
	ok := errors.As(err, &errServerResponse)
	return ok
}

func IsRetriesExhaustedError(err error) bool {
	var errRetriesExhausted ErrRetriesExhausted
	ok := errors.As(err, &errRetriesExhausted)
	return ok
}
