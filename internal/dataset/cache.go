package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/insights-cli/internal/model"
)

// Cache memoizes dataset loads. Concurrent callers for the same key share
// a single underlying load; successful results are cached for the process
// lifetime until Clear. Failures are never cached, so the next call
// retries the source chain.
type Cache struct {
	sources []Source

	mu     sync.RWMutex
	cached map[string]*model.RawDataset

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// CacheStats reports cache performance counters.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Loads   int64 `json:"loads"`
}

// NewCache creates a Cache over an ordered source chain.
func NewCache(sources ...Source) *Cache {
	return &Cache{
		sources: sources,
		cached:  make(map[string]*model.RawDataset),
	}
}

// Load returns the dataset for an endpoint cache key. Cached data returns
// immediately with no I/O. Otherwise exactly one load runs per key at a
// time; concurrent callers await its outcome, and a caller whose context
// expires first gets ctx.Err() back while the flight runs on.
func (c *Cache) Load(ctx context.Context, key string) (*model.RawDataset, error) {
	c.mu.RLock()
	ds, ok := c.cached[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return ds, nil
	}
	c.misses.Add(1)

	// A caller-imposed timeout abandons the shared flight without killing
	// it; the load continues on a detached context and a later caller for
	// the same key still observes its outcome.
	loadCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.RLock()
		ds, ok := c.cached[key]
		c.mu.RUnlock()
		if ok {
			return ds, nil
		}

		ds, err := c.loadFromSources(loadCtx, key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached[key] = ds
		c.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.RawDataset), nil
	}
}

// loadFromSources walks the source chain in order. Exhausting every source
// is a DatasetUnavailableError naming each attempt; callers must not
// substitute another endpoint's data.
func (c *Cache) loadFromSources(ctx context.Context, key string) (*model.RawDataset, error) {
	c.loads.Add(1)

	var attempted []string
	for _, src := range c.sources {
		attempted = append(attempted, src.Name())

		ds, err := src.Load(ctx, key)
		if err == nil {
			zap.L().Info("dataset: loaded",
				zap.String("key", key),
				zap.String("source", src.Name()),
				zap.Int("records", len(ds.Results)),
			)
			return ds, nil
		}
		if !errors.Is(err, ErrNotFound) {
			zap.L().Warn("dataset: source failed",
				zap.String("key", key),
				zap.String("source", src.Name()),
				zap.Error(err),
			)
		}
	}

	return nil, &model.DatasetUnavailableError{Key: key, Attempted: attempted}
}

// Clear empties the cache. In-flight loads complete and may repopulate it
// afterward; that race is accepted for an invalidation operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.cached = make(map[string]*model.RawDataset)
	c.mu.Unlock()
}

// Stats returns cache performance counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	entries := len(c.cached)
	c.mu.RUnlock()

	return CacheStats{
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Loads:   c.loads.Load(),
	}
}
