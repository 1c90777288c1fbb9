package topology

import (
	"math/rand/v2"

	"cdnflow/pkg/config"
	"cdnflow/pkg/flow"
)

// layeredParams parameterizes generateLayered's random draws, letting
// GenerateMedium and GenerateLarge share one builder over different
// connectivity and capacity/cost ranges.
type layeredParams struct {
	originCacheConnectivity float64
	originCacheCapMin       int64
	originCacheCapRange     int64
	originCacheCostMin      int64
	originCacheCostRange    int64

	cacheEdgeConnectivity float64
	cacheEdgeCapMin       int64
	cacheEdgeCapRange     int64
	cacheEdgeCostMin      int64
	cacheEdgeCostRange    int64

	edgeDemandMin   int64
	edgeDemandRange int64
}

// generateLayered builds a super-source/origins/caches/edge-servers/
// super-sink graph. Node numbering is: 0 is the super-source; origins
// occupy [1, 1+origins); caches occupy [1+origins, 1+origins+caches);
// edge servers occupy [1+origins+caches, 1+origins+caches+edges); the
// last node is the super-sink. Per edge-server demand is drawn
// independently and fed back as the arc capacity from that edge server
// to the sink, so Demand is exactly the sum the sink can absorb.
func generateLayered(cfg config.ScenarioConfig, seed int64, origins, caches, edgeServers int, p layeredParams) Scenario {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	source := 0
	originBase := 1
	cacheBase := originBase + origins
	edgeBase := cacheBase + caches
	sink := edgeBase + edgeServers

	g := flow.New(sink + 1)

	for i := 0; i < origins; i++ {
		mustAddArc(g, source, originBase+i, 1<<40, 0)
	}

	for i := 0; i < origins; i++ {
		for j := 0; j < caches; j++ {
			if p.originCacheConnectivity < 1.0 && rng.Float64() >= p.originCacheConnectivity {
				continue
			}
			capacity := p.originCacheCapMin + int64(rng.IntN(int(p.originCacheCapRange)))
			cost := p.originCacheCostMin + int64(rng.IntN(int(p.originCacheCostRange)))
			mustAddArc(g, originBase+i, cacheBase+j, capacity, cost)
		}
	}

	for i := 0; i < caches; i++ {
		for j := 0; j < edgeServers; j++ {
			if rng.Float64() >= p.cacheEdgeConnectivity {
				continue
			}
			capacity := p.cacheEdgeCapMin + int64(rng.IntN(int(p.cacheEdgeCapRange)))
			cost := p.cacheEdgeCostMin + int64(rng.IntN(int(p.cacheEdgeCostRange)))
			mustAddArc(g, cacheBase+i, edgeBase+j, capacity, cost)
		}
	}

	var demand int64
	for j := 0; j < edgeServers; j++ {
		d := p.edgeDemandMin + int64(rng.IntN(int(p.edgeDemandRange)))
		mustAddArc(g, edgeBase+j, sink, d, 0)
		demand += d
	}

	return Scenario{
		Graph:          g,
		Source:         source,
		Sink:           sink,
		Demand:         demand,
		NumOrigins:     origins,
		NumCaches:      caches,
		NumEdgeServers: edgeServers,
	}
}
