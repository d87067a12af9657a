package retry

import (
	"fmt"
	"time"

	"stock-monitor/src/logger"
)

// -----------------------------------------------------------------------------

// Config holds the backoff settings for a retried operation.
type Config struct {
	// MaxRetries is the total number of attempts made. Values below 1
	// (including negative) mean the operation runs exactly once.
	MaxRetries int
	// BaseDelay is the pause after the first failed attempt. Zero means
	// no pause between retries.
	BaseDelay time.Duration
	// MaxDelay caps the pause between attempts. Zero caps every pause
	// at zero, so retries run back to back.
	MaxDelay time.Duration
}

// DefaultConfig returns the standard backoff settings.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   60 * time.Second,
	}
}

// sleep is swapped out in tests to record delays without waiting.
var sleep = time.Sleep

// -----------------------------------------------------------------------------

// ExhaustedError is the terminal failure returned once the retry budget is
// spent. Cause is the error from the final attempt.
type ExhaustedError struct {
	Operation string
	Retries   int
	Cause     error
}

func (e *ExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed after %d retries: %v", e.Operation, e.Retries, e.Cause)
	}
	return fmt.Sprintf("%s failed after %d retries", e.Operation, e.Retries)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// backoffDelay computes the pause after failed attempt number attempt,
// doubling from BaseDelay and capped by MaxDelay.
func backoffDelay(cfg Config, attempt int) time.Duration {
	if attempt > 62 {
		attempt = 62
	}
	d := cfg.BaseDelay << uint(attempt)
	if d < 0 {
		// Shift overflowed.
		d = cfg.MaxDelay
	}
	if d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}

// -----------------------------------------------------------------------------

// Do executes fn with exponential backoff, retrying on any error up to the
// configured budget. Each failed attempt with budget remaining logs a warning
// and sleeps min(BaseDelay * 2^attempt, MaxDelay) before the next try. Once
// the budget is exhausted the last error is wrapped in an ExhaustedError.
// There is no sleep after the final attempt.
func Do(cfg Config, operation string, log *logger.Logger, fn func() error) error {
	_, err := DoWithResult(cfg, operation, log, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// -----------------------------------------------------------------------------

// DoWithResult is Do for operations that return a value alongside the error.
func DoWithResult[T any](cfg Config, operation string, log *logger.Logger, fn func() (T, error)) (T, error) {
	var zero T

	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		if log != nil {
			log.Warning("Retrying %s due to error: %v", operation, err)
		}
		sleep(backoffDelay(cfg, attempt))
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return zero, &ExhaustedError{Operation: operation, Retries: retries, Cause: lastErr}
}
