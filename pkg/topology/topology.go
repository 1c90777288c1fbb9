// Package topology builds layered content-delivery-network graphs —
// super-source to origins to caches to edge servers to super-sink — as
// inputs to flow.Graph.Solve. GenerateSmall is a fixed fixture; the medium
// and large generators draw pseudo-random capacities and costs from a
// seeded source so results are reproducible across runs with the same seed.
package topology

import (
	"cdnflow/pkg/config"
	"cdnflow/pkg/flow"
)

// Scenario bundles a generated graph with the parameters needed to solve
// and report on it.
type Scenario struct {
	Graph  *flow.Graph
	Source int
	Sink   int
	Demand int64

	NumOrigins     int
	NumCaches      int
	NumEdgeServers int

	// Scale is the scalability-series step this scenario belongs to, or 0
	// for scenarios generated outside that series.
	Scale int
}

// TotalNodes is the node count of the underlying graph.
func (s Scenario) TotalNodes() int { return s.Graph.NodeCount() }

// NumArcs is the arc count of the underlying graph.
func (s Scenario) NumArcs() int { return s.Graph.ArcCount() }

// GenerateSmall builds the fixed eight-node CDN fan-out fixture: one
// origin, two caches, three edge servers, a super-source, and a
// super-sink, with a demand that exactly saturates the edge-to-sink
// capacity.
func GenerateSmall() Scenario {
	g := flow.New(8)
	arcs := [][4]int64{
		{0, 1, 100, 0},
		{1, 2, 50, 5},
		{1, 3, 50, 3},
		{2, 4, 30, 2},
		{2, 5, 30, 3},
		{3, 5, 30, 1},
		{3, 6, 30, 4},
		{4, 7, 20, 0},
		{5, 7, 30, 0},
		{6, 7, 20, 0},
	}
	for _, a := range arcs {
		mustAddArc(g, int(a[0]), int(a[1]), a[2], a[3])
	}

	return Scenario{
		Graph:          g,
		Source:         0,
		Sink:           7,
		Demand:         70,
		NumOrigins:     1,
		NumCaches:      2,
		NumEdgeServers: 3,
	}
}

// GenerateMedium builds a two-origin, five-cache, ten-edge-server topology
// with partial cache/edge-server connectivity, mirroring the scale used to
// validate the algorithm against a mid-size, partially sparse network.
func GenerateMedium(cfg config.ScenarioConfig, seed int64) Scenario {
	return generateLayered(cfg, seed, 2, 5, 10, layeredParams{
		originCacheCapMin: 30, originCacheCapRange: 50,
		originCacheCostMin: 1, originCacheCostRange: 9,
		cacheEdgeConnectivity: connectivityOrDefault(cfg.MediumCacheEdgeConnectivity, 0.4),
		cacheEdgeCapMin:       20, cacheEdgeCapRange: 30,
		cacheEdgeCostMin: 1, cacheEdgeCostRange: 4,
		edgeDemandMin: 20, edgeDemandRange: 30,
		originCacheConnectivity: 1.0, // origins always reach every cache
	})
}

// GenerateLarge builds a sparsely connected topology of the given size:
// origin/cache connectivity defaults to 50%, cache/edge-server
// connectivity to 30%, matching a network an order of magnitude larger
// than GenerateMedium's.
func GenerateLarge(cfg config.ScenarioConfig, origins, caches, edgeServers int, seed int64) Scenario {
	return generateLayered(cfg, seed, origins, caches, edgeServers, layeredParams{
		originCacheConnectivity: connectivityOrDefault(cfg.LargeOriginCacheConnectivity, 0.5),
		originCacheCapMin:       50, originCacheCapRange: 100,
		originCacheCostMin: 1, originCacheCostRange: 7,
		cacheEdgeConnectivity: connectivityOrDefault(cfg.LargeCacheEdgeConnectivity, 0.3),
		cacheEdgeCapMin:       20, cacheEdgeCapRange: 60,
		cacheEdgeCostMin: 1, cacheEdgeCostRange: 4,
		edgeDemandMin: 30, edgeDemandRange: 30,
	})
}

// GenerateScalability returns a series of large-scale scenarios of
// growing size: step i (1-indexed) has 1+i origins, 5+5i caches, and
// 10+10i edge servers. steps <= 0 yields an empty series.
func GenerateScalability(cfg config.ScenarioConfig, steps int, seed int64) []Scenario {
	scenarios := make([]Scenario, 0, steps)
	for step := 1; step <= steps; step++ {
		origins := 1 + step
		caches := 5 + 5*step
		edgeServers := 10 + 10*step
		s := GenerateLarge(cfg, origins, caches, edgeServers, seed)
		s.Scale = step
		scenarios = append(scenarios, s)
	}
	return scenarios
}

// connectivityOrDefault falls back to def when p is not a usable
// probability, so a zero-value ScenarioConfig still produces a connected
// topology.
func connectivityOrDefault(p, def float64) float64 {
	if p <= 0 || p > 1 {
		return def
	}
	return p
}

func mustAddArc(g *flow.Graph, tail, head int, capacity, cost int64) {
	if _, err := g.AddArc(tail, head, capacity, cost); err != nil {
		// Only reachable if this package's own fixtures are malformed.
		panic(err)
	}
}
