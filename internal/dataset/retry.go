package dataset

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/model"
)

// RetryConfig controls retry behavior for flaky remote sources.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialBackoff is the base delay before the first retry.
	InitialBackoff time.Duration
	// MaxBackoff caps the backoff duration.
	MaxBackoff time.Duration
	// Multiplier scales the backoff after each attempt.
	Multiplier float64
	// JitterFraction adds random jitter as a fraction of the delay.
	JitterFraction float64
}

// DefaultRetryConfig suits blob and FTP fetches.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.25,
	}
}

// RetrySource decorates a Source with retries. A missing key is a
// definitive answer and is never retried; transport failures are.
type RetrySource struct {
	inner Source
	cfg   RetryConfig
}

// WithRetry wraps a source in retry behavior.
func WithRetry(inner Source, cfg RetryConfig) *RetrySource {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 2.0
	}
	return &RetrySource{inner: inner, cfg: cfg}
}

// Name implements Source.
func (s *RetrySource) Name() string { return s.inner.Name() }

// Load implements Source.
func (s *RetrySource) Load(ctx context.Context, key string) (*model.RawDataset, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		ds, err := s.inner.Load(ctx, key)
		if err == nil {
			return ds, nil
		}
		lastErr = err

		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return nil, err
		}
		if attempt >= s.cfg.MaxAttempts-1 {
			break
		}

		delay := s.backoff(attempt)
		zap.L().Warn("dataset: retrying source",
			zap.String("source", s.inner.Name()),
			zap.String("key", key),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lastErr
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (s *RetrySource) backoff(attempt int) time.Duration {
	delay := float64(s.cfg.InitialBackoff) * math.Pow(s.cfg.Multiplier, float64(attempt))
	if max := float64(s.cfg.MaxBackoff); s.cfg.MaxBackoff > 0 && delay > max {
		delay = max
	}
	if s.cfg.JitterFraction > 0 {
		jitter := delay * s.cfg.JitterFraction
		delay += (rand.Float64()*2 - 1) * jitter
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
