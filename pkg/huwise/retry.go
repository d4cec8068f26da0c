package huwise

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for retry operations.
var (
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huwise_retries_total",
		Help: "Total number of retry attempts",
	})

	retriesExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huwise_retries_exhausted_total",
		Help: "Total number of times retry attempts were exhausted",
	})
)

// RetryConfig holds the configuration for the Retry combinator.
type RetryConfig struct {
	// Tries is the total number of attempts, including the first one.
	// Values below one behave like one: a single attempt, no retry.
	Tries int

	// Delay is the wait before the first retry. Zero retries immediately.
	Delay time.Duration

	// Backoff multiplies the delay after each retry.
	Backoff float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Tries:   4,
		Delay:   3 * time.Second,
		Backoff: 2,
	}
}

// Retry invokes op up to cfg.Tries times, waiting cfg.Delay before the
// first retry and multiplying the wait by cfg.Backoff after each one.
// Only errors matching the retryable predicate are retried; any other
// error propagates immediately without consuming an attempt. When all
// attempts are exhausted the final error propagates unchanged.
//
// The wait honours ctx, so the combinator composes with both blocking
// callers (context.Background) and cooperative ones that may cancel.
func Retry(ctx context.Context, cfg RetryConfig, retryable func(error) bool, op func() error) error {
	tries := cfg.Tries
	if tries < 1 {
		tries = 1
	}

	delay := cfg.Delay

	var lastErr error

	for attempt := 1; attempt <= tries; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}

		if attempt == tries {
			break
		}

		retriesTotal.Inc()
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("retries_left", tries-attempt).
			Dur("delay", delay).
			Msg("Operation failed, retrying")

		if delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted: %w (last error: %v)", ctx.Err(), lastErr)
			case <-time.After(delay):
			}
		}

		delay = time.Duration(float64(delay) * cfg.Backoff)
	}

	retriesExhaustedTotal.Inc()
	log.Warn().
		Err(lastErr).
		Int("tries", tries).
		Msg("Retry attempts exhausted")

	return lastErr
}
