package huwise_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

var errTransient = errors.New("transient failure")

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	attempts := 0
	cfg := huwise.RetryConfig{Tries: 3, Delay: time.Millisecond, Backoff: 2}

	err := huwise.Retry(context.Background(), cfg, nil, func() error {
		attempts++
		if attempts < 3 {
			return errTransient
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	cfg := huwise.RetryConfig{Tries: 3, Delay: time.Millisecond, Backoff: 2}

	err := huwise.Retry(context.Background(), cfg, nil, func() error {
		attempts++

		return errTransient
	})

	// The final error propagates unchanged
	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, attempts)
}

func TestRetry_NonRetryableReturnsImmediately(t *testing.T) {
	t.Parallel()

	permanent := errors.New("permanent failure")
	attempts := 0
	cfg := huwise.RetryConfig{Tries: 5, Delay: time.Millisecond, Backoff: 2}

	retryable := func(err error) bool {
		return errors.Is(err, errTransient)
	}

	err := huwise.Retry(context.Background(), cfg, retryable, func() error {
		attempts++

		return permanent
	})
	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetry_SingleAttempt(t *testing.T) {
	t.Parallel()

	attempts := 0

	err := huwise.Retry(context.Background(), huwise.RetryConfig{Tries: 1}, nil, func() error {
		attempts++

		return errTransient
	})
	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, attempts)
}

func TestRetry_NonPositiveTriesBehavesLikeOne(t *testing.T) {
	t.Parallel()

	attempts := 0

	err := huwise.Retry(context.Background(), huwise.RetryConfig{Tries: 0}, nil, func() error {
		attempts++

		return errTransient
	})
	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, attempts)
}

func TestRetry_ContextCancelAbortsWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := huwise.RetryConfig{Tries: 10, Delay: time.Minute, Backoff: 1}

	attempts := 0

	err := huwise.Retry(ctx, cfg, nil, func() error {
		attempts++
		cancel()

		return errTransient
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), errTransient.Error())
	assert.Equal(t, 1, attempts)
}

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	cfg := huwise.DefaultRetryConfig()
	assert.Equal(t, 4, cfg.Tries)
	assert.Equal(t, 3*time.Second, cfg.Delay)
	assert.InDelta(t, 2, cfg.Backoff, 0.001)
}
