package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdnflow/pkg/config"
)

func TestGenerateSmall(t *testing.T) {
	s := GenerateSmall()

	assert.Equal(t, 8, s.TotalNodes())
	assert.Equal(t, 10, s.NumArcs())
	assert.Equal(t, 0, s.Source)
	assert.Equal(t, 7, s.Sink)
	assert.Equal(t, int64(70), s.Demand)
	assert.Equal(t, 1, s.NumOrigins)
	assert.Equal(t, 2, s.NumCaches)
	assert.Equal(t, 3, s.NumEdgeServers)

	res, err := s.Graph.Solve(s.Source, s.Sink, s.Demand)
	require.NoError(t, err)
	assert.True(t, res.Satisfied)
	assert.Equal(t, int64(70), res.TotalFlow)
	assert.Equal(t, int64(400), res.TotalCost)
}

func TestGenerateMedium(t *testing.T) {
	cfg := config.ScenarioConfig{
		MediumCacheEdgeConnectivity: 0.4,
	}
	s := GenerateMedium(cfg, 42)

	assert.Equal(t, 2, s.NumOrigins)
	assert.Equal(t, 5, s.NumCaches)
	assert.Equal(t, 10, s.NumEdgeServers)
	// source + origins + caches + edges + sink
	assert.Equal(t, 2+2+5+10, s.TotalNodes())
	assert.Greater(t, s.Demand, int64(0))

	res, err := s.Graph.Solve(s.Source, s.Sink, s.Demand)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.TotalFlow, int64(0))
	assert.LessOrEqual(t, res.TotalFlow, s.Demand)
}

func TestGenerateLarge(t *testing.T) {
	cfg := config.ScenarioConfig{
		LargeOriginCacheConnectivity: 0.5,
		LargeCacheEdgeConnectivity:   0.3,
	}
	s := GenerateLarge(cfg, 3, 10, 15, 7)

	assert.Equal(t, 3, s.NumOrigins)
	assert.Equal(t, 10, s.NumCaches)
	assert.Equal(t, 15, s.NumEdgeServers)
	assert.Equal(t, 2+3+10+15, s.TotalNodes())

	res, err := s.Graph.Solve(s.Source, s.Sink, s.Demand)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.TotalFlow, s.Demand)
}

func TestGenerateLarge_Reproducible(t *testing.T) {
	cfg := config.ScenarioConfig{}

	a := GenerateLarge(cfg, 2, 6, 8, 99)
	b := GenerateLarge(cfg, 2, 6, 8, 99)

	assert.Equal(t, a.Demand, b.Demand)
	assert.Equal(t, a.NumArcs(), b.NumArcs())

	resA, err := a.Graph.Solve(a.Source, a.Sink, a.Demand)
	require.NoError(t, err)
	resB, err := b.Graph.Solve(b.Source, b.Sink, b.Demand)
	require.NoError(t, err)
	// ElapsedTime is wall-clock and differs between runs; compare the rest.
	resA.ElapsedTime, resB.ElapsedTime = 0, 0
	assert.Equal(t, resA, resB)
}

func TestGenerateScalability(t *testing.T) {
	cfg := config.ScenarioConfig{}

	scenarios := GenerateScalability(cfg, 5, 42)
	require.Len(t, scenarios, 5)

	for i, s := range scenarios {
		step := i + 1
		assert.Equal(t, step, s.Scale)
		assert.Equal(t, 1+step, s.NumOrigins)
		assert.Equal(t, 5+5*step, s.NumCaches)
		assert.Equal(t, 10+10*step, s.NumEdgeServers)
	}
}

func TestGenerateScalability_ZeroSteps(t *testing.T) {
	scenarios := GenerateScalability(config.ScenarioConfig{}, 0, 42)
	assert.Empty(t, scenarios)
}

func TestConnectivityOrDefault(t *testing.T) {
	assert.Equal(t, 0.4, connectivityOrDefault(0, 0.4))
	assert.Equal(t, 0.4, connectivityOrDefault(-1, 0.4))
	assert.Equal(t, 0.4, connectivityOrDefault(1.5, 0.4))
	assert.Equal(t, 0.7, connectivityOrDefault(0.7, 0.4))
}
