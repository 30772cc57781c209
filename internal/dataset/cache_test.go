package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insights-cli/internal/model"
)

// stubSource is a scriptable Source for cache tests.
type stubSource struct {
	name  string
	delay time.Duration
	calls atomic.Int64

	mu   sync.Mutex
	data map[string]*model.RawDataset
	errs map[string]error
}

func newStubSource(name string) *stubSource {
	return &stubSource{
		name: name,
		data: make(map[string]*model.RawDataset),
		errs: make(map[string]error),
	}
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Load(_ context.Context, key string) (*model.RawDataset, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[key]; ok {
		return nil, err
	}
	if ds, ok := s.data[key]; ok {
		return ds, nil
	}
	return nil, ErrNotFound
}

func sampleDataset(n int) *model.RawDataset {
	results := make([]map[string]any, n)
	for i := range results {
		results[i] = map[string]any{"area_id": "10001", "value": float64(i)}
	}
	return &model.RawDataset{Success: true, Results: results}
}

func TestCache_HitAvoidsSecondLoad(t *testing.T) {
	src := newStubSource("stub")
	src.data["analyze"] = sampleDataset(3)
	c := NewCache(src)

	first, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	second, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)

	assert.Same(t, first, second, "cached dataset is shared")
	assert.Equal(t, int64(1), src.calls.Load())

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCache_ConcurrentCallersShareOneLoad(t *testing.T) {
	src := newStubSource("stub")
	src.data["analyze"] = sampleDataset(3)
	src.delay = 20 * time.Millisecond
	c := NewCache(src)

	const callers = 50
	var wg sync.WaitGroup
	results := make([]*model.RawDataset, callers)
	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Load(context.Background(), "analyze")
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int64(1), src.calls.Load(), "exactly one underlying load")
}

func TestCache_FailureIsNotCached(t *testing.T) {
	src := newStubSource("stub")
	c := NewCache(src)

	_, err := c.Load(context.Background(), "analyze")
	require.Error(t, err)
	assert.True(t, model.IsDatasetUnavailable(err))

	// Source recovers; the next call must retry rather than replay the
	// failure.
	src.mu.Lock()
	src.data["analyze"] = sampleDataset(2)
	src.mu.Unlock()

	ds, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, ds.Results, 2)
	assert.Equal(t, int64(2), src.calls.Load())
}

func TestCache_SourceChainOrder(t *testing.T) {
	first := newStubSource("first")
	second := newStubSource("second")
	second.data["analyze"] = sampleDataset(1)
	c := NewCache(first, second)

	ds, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, ds.Results, 1)
	assert.Equal(t, int64(1), first.calls.Load(), "first source consulted before fallback")
}

func TestCache_UnavailableNamesAttemptedSources(t *testing.T) {
	c := NewCache(newStubSource("alpha"), newStubSource("beta"))

	_, err := c.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
	assert.Contains(t, err.Error(), "beta")
	assert.Contains(t, err.Error(), "missing")
}

func TestCache_ExpiredCallerReturnsPromptly(t *testing.T) {
	src := newStubSource("slow")
	src.data["analyze"] = sampleDataset(1)
	src.delay = 300 * time.Millisecond
	c := NewCache(src)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Load(ctx, "analyze")
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 150*time.Millisecond,
		"an abandoning caller must not wait out the shared flight")

	// The abandoned flight completes on its own and serves later callers.
	ds, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, ds.Results, 1)
	assert.Equal(t, int64(1), src.calls.Load(), "second caller joins or reuses the first flight")
}

func TestCache_CallerTimeoutDoesNotPoison(t *testing.T) {
	src := newStubSource("slow")
	src.data["analyze"] = sampleDataset(1)
	src.delay = 50 * time.Millisecond
	c := NewCache(src)

	// First caller gives up almost immediately; the shared load keeps
	// running on a detached context.
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, _ = c.Load(ctx, "analyze")

	ds, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Len(t, ds.Results, 1)
}

func TestCache_Clear(t *testing.T) {
	src := newStubSource("stub")
	src.data["analyze"] = sampleDataset(1)
	c := NewCache(src)

	_, err := c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Stats().Entries)

	_, err = c.Load(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, int64(2), src.calls.Load(), "cleared entries reload")
}
