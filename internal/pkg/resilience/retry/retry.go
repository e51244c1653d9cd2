// Package retry provides a configurable retry mechanism for operations that may
// fail temporarily. It wraps the retry-go package from Avast with exponential
// backoff and functional options.
//
// Basic usage:
//
//	r := retry.New(retry.WithAttempts(4), retry.WithRetryIf(isTransient))
//	if errs := r.Execute(ctx, fetch); errs != nil {
//	    return errors.Join(errs...)
//	}
package retry

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retries.
type Retry interface {
	// Execute runs operation until it succeeds, the attempt budget is spent,
	// the retry predicate rejects an error, or ctx is done.
	//
	// It returns nil on success; otherwise it returns every error observed,
	// in attempt order. When ctx ends the run, its error is the last element.
	Execute(ctx context.Context, operation func() error) []error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts uint             // maximum number of attempts, including the first one
	delay    time.Duration    // base delay between attempts
	maxDelay time.Duration    // cap on the exponential delay
	retryIf  func(error) bool // decides whether an error is worth another attempt
}

// Option configures the retry mechanism.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New creates a Retry with the given options.
//
// Defaults:
//   - attempts: 3 (1 initial attempt + 2 retries)
//   - delay:    1 second, growing exponentially
//   - maxDelay: 5 seconds
//   - retryIf:  every error is retried
func New(opts ...Option) Retry {
	cfg := config{
		attempts: 3,
		delay:    1 * time.Second,
		maxDelay: 5 * time.Second,
		retryIf:  func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) []error {
	err := retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(r.cfg.retryIf),
		retry.LastErrorOnly(false),
		retry.Context(ctx),
	)
	if err == nil {
		return nil
	}

	var retryErr retry.Error
	if !errors.As(err, &retryErr) {
		return []error{err}
	}

	// retry-go preallocates one slot per attempt; unused slots stay nil.
	errs := make([]error, 0, len(retryErr))
	for _, e := range retryErr.WrappedErrors() {
		if e != nil {
			errs = append(errs, e)
		}
	}
	return errs
}

// WithAttempts sets the maximum number of attempts, including the first one.
// Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential delay between attempts. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithRetryIf restricts retries to errors for which fn returns true. The first
// rejected error stops the run immediately.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}
