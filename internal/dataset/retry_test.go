package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestRetrySource_TransientFailureRecovers(t *testing.T) {
	src := newStubSource("flaky")
	src.errs["analyze"] = eris.New("connection reset")
	rs := WithRetry(src, fastRetry(3))

	// Heal the source after the first failure.
	go func() {
		time.Sleep(500 * time.Microsecond)
		src.mu.Lock()
		delete(src.errs, "analyze")
		src.data["analyze"] = sampleDataset(1)
		src.mu.Unlock()
	}()

	ds, err := rs.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, ds.Results, 1)
	assert.Greater(t, src.calls.Load(), int64(1))
}

func TestRetrySource_NotFoundIsNotRetried(t *testing.T) {
	src := newStubSource("empty")
	rs := WithRetry(src, fastRetry(5))

	_, err := rs.Load(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int64(1), src.calls.Load(), "a definitive miss must not burn retries")
}

func TestRetrySource_ExhaustsAttempts(t *testing.T) {
	src := newStubSource("down")
	src.errs["analyze"] = eris.New("unreachable")
	rs := WithRetry(src, fastRetry(3))

	_, err := rs.Load(context.Background(), "analyze")
	require.Error(t, err)
	assert.Equal(t, int64(3), src.calls.Load())
}

func TestRetrySource_ContextCancelStops(t *testing.T) {
	src := newStubSource("down")
	src.errs["analyze"] = eris.New("unreachable")
	rs := WithRetry(src, RetryConfig{MaxAttempts: 10, InitialBackoff: time.Hour, Multiplier: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := rs.Load(ctx, "analyze")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "cancellation interrupts the backoff sleep")
}
