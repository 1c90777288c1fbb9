package flow

import (
	"log/slog"
	"math"
)

// infinity is the unreachable-distance sentinel. Halving MaxInt64 leaves
// enough headroom that summing two finite distances during relaxation
// never overflows.
const infinity = int64(math.MaxInt64 / 2)

// spfaMaxRelaxationsPerNode bounds the number of node pops allowed during a
// single probe, scaled by N^2. Sized generously above any legitimate SPFA
// run on a graph free of negative cycles; tripping it indicates a negative
// cycle slipped into the residual graph, which is an internal invariant
// violation rather than a condition callers can recover from.
const spfaMaxRelaxationsPerNode = 10

// probe runs one shortest-path search over the residual graph from source
// to sink, bounded to push at most cap units, and reports the amount
// actually pushed along with the per-unit cost of that path.
//
// On success it mutates the graph in place: every arc along the discovered
// path has Augment or Cancel applied per the direction it was traversed in,
// and the returned amount/cost describe that mutation. On failure (sink
// unreachable, or either safety bound tripped) it returns (0, 0) and leaves
// the graph untouched.
func probe(g *Graph, source, sink int, cap int64) (amount int64, unitCost int64) {
	n := g.n
	dist := make([]int64, n)
	parentArc := make([]int, n)
	viaReverse := make([]bool, n)
	inQueue := make([]bool, n)
	for i := range dist {
		dist[i] = infinity
		parentArc[i] = -1
	}

	queue := make([]int, 0, n)
	dist[source] = 0
	queue = append(queue, source)
	inQueue[source] = true

	maxPops := n * n * spfaMaxRelaxationsPerNode
	pops := 0
	for len(queue) > 0 {
		if pops >= maxPops {
			slog.Error("flow: SPFA exceeded relaxation bound, treating probe as exhausted",
				"source", source, "sink", sink, "nodes", n, "maxPops", maxPops)
			return 0, 0
		}
		pops++

		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false

		for _, idx := range g.out[u] {
			a := &g.arcs[idx]
			if a.ForwardResidualCapacity() <= 0 {
				continue
			}
			v := a.head
			nd := dist[u] + a.ForwardResidualCost()
			if nd < dist[v] {
				dist[v] = nd
				parentArc[v] = idx
				viaReverse[v] = false
				if !inQueue[v] {
					queue = append(queue, v)
					inQueue[v] = true
				}
			}
		}

		for _, idx := range g.in[u] {
			a := &g.arcs[idx]
			if a.ReverseResidualCapacity() <= 0 {
				continue
			}
			v := a.tail
			nd := dist[u] + a.ReverseResidualCost()
			if nd < dist[v] {
				dist[v] = nd
				parentArc[v] = idx
				viaReverse[v] = true
				if !inQueue[v] {
					queue = append(queue, v)
					inQueue[v] = true
				}
			}
		}
	}

	if dist[sink] >= infinity {
		return 0, 0
	}

	type step struct {
		arc     int
		reverse bool
	}
	path := make([]step, 0, n)
	bottleneck := cap
	current := sink
	maxSteps := n + 1
	for current != source {
		if len(path) >= maxSteps {
			slog.Error("flow: SPFA path reconstruction exceeded bound, treating probe as exhausted",
				"source", source, "sink", sink, "nodes", n, "maxSteps", maxSteps)
			return 0, 0
		}
		idx := parentArc[current]
		reverse := viaReverse[current]
		a := &g.arcs[idx]
		if reverse {
			if a.ReverseResidualCapacity() < bottleneck {
				bottleneck = a.ReverseResidualCapacity()
			}
			current = a.head
		} else {
			if a.ForwardResidualCapacity() < bottleneck {
				bottleneck = a.ForwardResidualCapacity()
			}
			current = a.tail
		}
		path = append(path, step{arc: idx, reverse: reverse})
	}

	for _, s := range path {
		a := &g.arcs[s.arc]
		if s.reverse {
			a.Cancel(bottleneck)
		} else {
			a.Augment(bottleneck)
		}
	}

	return bottleneck, dist[sink]
}
