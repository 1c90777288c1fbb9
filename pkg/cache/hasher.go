package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"cdnflow/pkg/flow"
)

// GraphHash computes a deterministic digest of a graph's arcs, independent
// of the order arcs were added in.
func GraphHash(g *flow.Graph) string {
	if g == nil {
		return ""
	}

	data := graphToCanonical(g)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// graphToCanonical builds a sorted, deterministic byte representation of a
// graph's arcs so that two graphs built in a different arc order hash
// identically.
func graphToCanonical(g *flow.Graph) []byte {
	type arcData struct {
		tail, head       int
		capacity, unitCost int64
	}

	arcs := make([]arcData, 0, g.ArcCount())
	for i := 0; i < g.ArcCount(); i++ {
		a := g.ArcAt(i)
		arcs = append(arcs, arcData{a.Tail(), a.Head(), a.Capacity(), a.UnitCost()})
	}
	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].tail != arcs[j].tail {
			return arcs[i].tail < arcs[j].tail
		}
		if arcs[i].head != arcs[j].head {
			return arcs[i].head < arcs[j].head
		}
		if arcs[i].capacity != arcs[j].capacity {
			return arcs[i].capacity < arcs[j].capacity
		}
		return arcs[i].unitCost < arcs[j].unitCost
	})

	var result []byte
	result = append(result, []byte(fmt.Sprintf("n:%d;", g.NodeCount()))...)
	for _, a := range arcs {
		result = append(result, []byte(fmt.Sprintf("a:%d:%d:%d:%d;",
			a.tail, a.head, a.capacity, a.unitCost))...)
	}
	return result
}

// BuildSolveKey builds the cache key for a solve result over a graph
// identified by graphHash, for the given source/sink/demand.
func BuildSolveKey(graphHash string, source, sink int, demand int64) string {
	return fmt.Sprintf("solve:%s:%d:%d:%d", graphHash, source, sink, demand)
}

// QuickHash is a general-purpose digest for arbitrary byte payloads.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash is a truncated, 16-character form of QuickHash.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
