package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cdnflow/pkg/flow"
)

// SolverCache memoizes flow.Graph.Solve results, keyed by a hash of the
// graph's arcs together with the source, sink, and demand solved for.
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult is the JSON-serializable form of a flow.Result stored
// in the cache.
type CachedSolveResult struct {
	TotalFlow  int64     `json:"total_flow"`
	TotalCost  int64     `json:"total_cost"`
	Satisfied  bool      `json:"satisfied"`
	ElapsedMs  float64   `json:"elapsed_ms"`
	ComputedAt time.Time `json:"computed_at"`
}

// NewSolverCache wraps cache with solve-result memoization. A non-positive
// defaultTTL falls back to ten minutes.
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get returns a previously cached result for solving g from source to sink
// under demand, if present.
func (sc *SolverCache) Get(ctx context.Context, g *flow.Graph, source, sink int, demand int64) (*CachedSolveResult, bool, error) {
	key := sc.key(g, source, sink, demand)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupted entry; evict it and report a miss rather than fail.
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best-effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores result for solving g from source to sink under demand. A
// non-positive ttl uses the cache's default TTL.
func (sc *SolverCache) Set(ctx context.Context, g *flow.Graph, source, sink int, demand int64, result flow.Result, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := sc.key(g, source, sink, demand)
	cached := CachedSolveResult{
		TotalFlow:  result.TotalFlow,
		TotalCost:  result.TotalCost,
		Satisfied:  result.Satisfied,
		ElapsedMs:  float64(result.ElapsedTime.Microseconds()) / 1000.0,
		ComputedAt: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// Invalidate removes every cached solve for g, regardless of which
// source/sink/demand it was solved under.
func (sc *SolverCache) Invalidate(ctx context.Context, g *flow.Graph) error {
	pattern := fmt.Sprintf("solve:%s:*", GraphHash(g))
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll removes every cached solve result.
func (sc *SolverCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}

func (sc *SolverCache) key(g *flow.Graph, source, sink int, demand int64) string {
	return BuildSolveKey(GraphHash(g), source, sink, demand)
}

// ToResult converts a cached entry back into a flow.Result.
func (r *CachedSolveResult) ToResult() flow.Result {
	return flow.Result{
		TotalFlow:   r.TotalFlow,
		TotalCost:   r.TotalCost,
		Satisfied:   r.Satisfied,
		ElapsedTime: time.Duration(r.ElapsedMs * float64(time.Millisecond)),
	}
}
