// Package report assembles and serializes benchmark results produced by
// running flow.Graph.Solve over generated topology.Scenario fixtures.
package report

import (
	"encoding/json"
	"time"

	"cdnflow/pkg/flow"
	"cdnflow/pkg/topology"
)

// Record is one scenario's solve outcome.
type Record struct {
	ElapsedMs  float64 `json:"elapsed_ms"`
	Flow       int64   `json:"flow"`
	Cost       int64   `json:"cost"`
	TotalNodes int     `json:"total_nodes"`
	NumEdges   int     `json:"num_edges"`
}

// ScalabilityRecord is a Record tagged with the scenario's position in a
// scalability series. Field name elapsed_time_ms (rather than Record's
// elapsed_ms) matches the original benchmark's naming for this series.
type ScalabilityRecord struct {
	Scale          int     `json:"scale"`
	NumOrigins     int     `json:"num_origins"`
	NumCaches      int     `json:"num_caches"`
	NumEdgeServers int     `json:"num_edge_servers"`
	ElapsedTimeMs  float64 `json:"elapsed_time_ms"`
	Flow           int64   `json:"flow"`
	Cost           int64   `json:"cost"`
	TotalNodes     int     `json:"total_nodes"`
	NumEdges       int     `json:"num_edges"`
}

// Summary is the full benchmark report, serialized with the exact
// top-level keys small_scale/medium_scale/large_scale/scalability.
type Summary struct {
	SmallScale  []Record            `json:"small_scale"`
	MediumScale []Record            `json:"medium_scale"`
	LargeScale  []Record            `json:"large_scale"`
	Scalability []ScalabilityRecord `json:"scalability"`
}

// NewRecord builds a Record from a solved scenario and the time its solve
// took.
func NewRecord(s topology.Scenario, res flow.Result) Record {
	return Record{
		ElapsedMs:  toMillis(res.ElapsedTime),
		Flow:       res.TotalFlow,
		Cost:       res.TotalCost,
		TotalNodes: s.TotalNodes(),
		NumEdges:   s.NumArcs(),
	}
}

// NewScalabilityRecord builds a ScalabilityRecord from a solved
// scalability-series scenario.
func NewScalabilityRecord(s topology.Scenario, res flow.Result) ScalabilityRecord {
	return ScalabilityRecord{
		Scale:          s.Scale,
		NumOrigins:     s.NumOrigins,
		NumCaches:      s.NumCaches,
		NumEdgeServers: s.NumEdgeServers,
		ElapsedTimeMs:  toMillis(res.ElapsedTime),
		Flow:           res.TotalFlow,
		Cost:           res.TotalCost,
		TotalNodes:     s.TotalNodes(),
		NumEdges:       s.NumArcs(),
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// JSON renders the summary as indented JSON.
func (s Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
