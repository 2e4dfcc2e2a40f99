package common

import (
	"context"
	"errors"
	"fmt"
)

// IsContextCanceled checks if an error is due to context cancellation
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// WrapError wraps an error with a message and preserves context cancellation
func WrapError(err error, message string) error {
	if IsContextCanceled(err) {
		return fmt.Errorf("%s: %w", message, err)
	}
	return fmt.Errorf("%s: %v", message, err)
}
