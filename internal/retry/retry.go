// internal/retry/retry.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
)

// ErrNoCandidates is returned by Ordered when there is nothing to try
var ErrNoCandidates = errors.New("no candidates to try")

// Ordered calls fn once per candidate, in order, and stops at the first
// success. There is no backoff between attempts. A non-retryable error, or a
// cancelled parent context, stops the walk early.
//
// The returned candidate is the one that succeeded. On failure the error of
// every attempt is kept in the chain, the last attempt first.
func Ordered(ctx context.Context, candidates []string, fn func(ctx context.Context, candidate string) error) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	var errs []error
	for attempt, candidate := range candidates {
		err := fn(ctx, candidate)
		if err == nil {
			if attempt > 0 {
				log.Debug().
					Int("attempt", attempt+1).
					Str("candidate", candidate).
					Msg("Fallback candidate succeeded")
			}
			return candidate, nil
		}

		errs = append([]error{err}, errs...)

		if ctx.Err() != nil {
			break
		}
		if !shouldRetry(err) {
			log.Debug().
				Err(err).
				Msg("Error is not retryable")
			break
		}

		if attempt < len(candidates)-1 {
			log.Debug().
				Int("attempt", attempt+1).
				Int("max_attempts", len(candidates)).
				Str("candidate", candidate).
				Err(err).
				Msg("Attempt failed, trying next candidate")
		}
	}

	if len(errs) == 1 {
		return "", errs[0]
	}
	return "", fmt.Errorf("all %d candidates failed: %w", len(errs), errors.Join(errs...))
}

// Permanent marks err so Ordered does not move on to the next candidate
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// shouldRetry determines if an error allows trying the next candidate
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var p *permanentError
	return !errors.As(err, &p)
}

// IsTimeout reports whether err is, or wraps, a deadline expiry
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

// StatusCoder is an interface for errors that provide an HTTP status code
type StatusCoder interface {
	GetStatusCode() int
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

func (e HTTPError) GetStatusCode() int {
	return e.StatusCode
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, status string, message string) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
	}
}
