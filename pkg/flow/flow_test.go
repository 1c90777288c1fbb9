package flow

import (
	"testing"

	"cdnflow/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArc_ResidualAccessors(t *testing.T) {
	a, err := newArc(0, 1, 10, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(10), a.ForwardResidualCapacity())
	assert.Equal(t, int64(3), a.ForwardResidualCost())
	assert.Equal(t, int64(0), a.ReverseResidualCapacity())
	assert.Equal(t, int64(-3), a.ReverseResidualCost())

	a.Augment(4)
	assert.Equal(t, int64(4), a.Flow())
	assert.Equal(t, int64(6), a.ForwardResidualCapacity())
	assert.Equal(t, int64(4), a.ReverseResidualCapacity())

	a.Cancel(1)
	assert.Equal(t, int64(3), a.Flow())
}

func TestArc_NegativeCapacityRejected(t *testing.T) {
	_, err := newArc(0, 1, -1, 0)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidCapacity, apperror.Code(err))
}

func TestGraph_AddArc_Validation(t *testing.T) {
	g := New(3)

	_, err := g.AddArc(-1, 1, 5, 1)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = g.AddArc(0, 3, 5, 1)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = g.AddArc(1, 1, 5, 1)
	assert.ErrorIs(t, err, ErrSelfLoop)

	_, err = g.AddArc(0, 1, -5, 1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	idx, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, g.ArcCount())
}

func TestGraph_Solve_LinearChain(t *testing.T) {
	g := New(3)
	_, err := g.AddArc(0, 1, 10, 2)
	require.NoError(t, err)
	_, err = g.AddArc(1, 2, 10, 3)
	require.NoError(t, err)

	result, err := g.Solve(0, 2, 7)
	require.NoError(t, err)
	assert.True(t, result.Satisfied)
	assert.Equal(t, int64(7), result.TotalFlow)
	assert.Equal(t, int64(7*(2+3)), result.TotalCost)
}

// TestGraph_Solve_ParallelPaths exercises path selection under demand that
// exceeds the cheapest path's capacity: the driver must saturate the cheap
// path first, then route the remainder over a more expensive one.
func TestGraph_Solve_ParallelPaths(t *testing.T) {
	g := New(4)
	// 0 -> 1 -> 3 (cheap, capacity-limited)
	_, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)
	_, err = g.AddArc(1, 3, 5, 1)
	require.NoError(t, err)
	// 0 -> 2 -> 3 (expensive, larger capacity)
	_, err = g.AddArc(0, 2, 10, 4)
	require.NoError(t, err)
	_, err = g.AddArc(2, 3, 10, 4)
	require.NoError(t, err)

	result, err := g.Solve(0, 3, 8)
	require.NoError(t, err)
	assert.True(t, result.Satisfied)
	assert.Equal(t, int64(8), result.TotalFlow)
	// 5 units at cost 2/unit via the cheap path, 3 units at cost 8/unit via
	// the expensive path: 5*2 + 3*8 = 34.
	assert.Equal(t, int64(34), result.TotalCost)
}

// TestGraph_Solve_CDNFanOut reproduces the fixed eight-node CDN fan-out
// fixture: a super-source feeding a single origin, two caches, three edge
// servers, and a super-sink, with edge-to-sink capacities summing to
// exactly the requested demand.
func TestGraph_Solve_CDNFanOut(t *testing.T) {
	g := New(8)
	type arcSpec struct {
		tail, head int
		cap, cost  int64
	}
	arcs := []arcSpec{
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
		_, err := g.AddArc(a.tail, a.head, a.cap, a.cost)
		require.NoError(t, err)
	}

	result, err := g.Solve(0, 7, 70)
	require.NoError(t, err)
	assert.True(t, result.Satisfied)
	assert.Equal(t, int64(70), result.TotalFlow)
	assert.Equal(t, int64(400), result.TotalCost)
}

// TestGraph_Solve_RequiresCancellation uses unit-capacity arcs where the
// first cheapest path (0->1->2->3, cost 3) blocks every other path that
// does not cancel its cross arc 1->2. The second augmentation must follow
// 0->2, back over 1->2 against its direction, then 1->3 (cost 3-1+3 = 5),
// so a demand of 2 is only met, at total cost 8, if cancellation works.
func TestGraph_Solve_RequiresCancellation(t *testing.T) {
	g := New(4)
	_, err := g.AddArc(0, 1, 1, 1)
	require.NoError(t, err)
	_, err = g.AddArc(1, 2, 1, 1)
	require.NoError(t, err)
	_, err = g.AddArc(2, 3, 1, 1)
	require.NoError(t, err)
	_, err = g.AddArc(0, 2, 1, 3)
	require.NoError(t, err)
	_, err = g.AddArc(1, 3, 1, 3)
	require.NoError(t, err)

	result, err := g.Solve(0, 3, 2)
	require.NoError(t, err)
	assert.True(t, result.Satisfied)
	assert.Equal(t, int64(2), result.TotalFlow)
	assert.Equal(t, int64(8), result.TotalCost)
}

func TestGraph_Solve_InfeasibleBottleneck(t *testing.T) {
	g := New(3)
	_, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)
	_, err = g.AddArc(1, 2, 5, 1)
	require.NoError(t, err)

	result, err := g.Solve(0, 2, 10)
	require.NoError(t, err)
	assert.False(t, result.Satisfied)
	assert.Equal(t, int64(5), result.TotalFlow)
	assert.Equal(t, int64(10), result.TotalCost)
}

func TestGraph_Solve_Disconnected(t *testing.T) {
	g := New(3)
	_, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)
	// node 2 has no arcs at all.

	result, err := g.Solve(0, 2, 5)
	require.NoError(t, err)
	assert.False(t, result.Satisfied)
	assert.Equal(t, int64(0), result.TotalFlow)
	assert.Equal(t, int64(0), result.TotalCost)
}

func TestGraph_Solve_ZeroCapacityArc(t *testing.T) {
	g := New(2)
	idx, err := g.AddArc(0, 1, 0, 1)
	require.NoError(t, err)

	result, err := g.Solve(0, 1, 5)
	require.NoError(t, err)
	assert.False(t, result.Satisfied)
	assert.Equal(t, int64(0), result.TotalFlow)

	flow, err := g.ArcFlow(idx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), flow)
}

func TestGraph_Solve_DemandZero(t *testing.T) {
	g := New(2)
	_, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)

	result, err := g.Solve(0, 1, 0)
	require.NoError(t, err)
	assert.True(t, result.Satisfied)
	assert.Equal(t, int64(0), result.TotalFlow)
	assert.Equal(t, int64(0), result.TotalCost)
}

func TestGraph_Solve_Preconditions(t *testing.T) {
	g := New(2)
	_, err := g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)

	_, err = g.Solve(0, 0, 1)
	assert.ErrorIs(t, err, ErrSameEndpoints)

	_, err = g.Solve(0, 1, -1)
	assert.ErrorIs(t, err, ErrNegativeDemand)

	_, err = g.Solve(-1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = g.Solve(0, 5, 1)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestGraph_ArcFlow_InvalidIndex(t *testing.T) {
	g := New(2)
	_, err := g.ArcFlow(0)
	assert.ErrorIs(t, err, ErrInvalidArc)

	_, err = g.AddArc(0, 1, 5, 1)
	require.NoError(t, err)
	_, err = g.ArcFlow(1)
	assert.ErrorIs(t, err, ErrInvalidArc)
}

// TestGraph_Solve_FlowConservation checks that, for every intermediate
// node, inflow equals outflow once a solve completes.
func TestGraph_Solve_FlowConservation(t *testing.T) {
	g := New(8)
	type arcSpec struct {
		tail, head int
		cap, cost  int64
	}
	arcs := []arcSpec{
		{0, 1, 100, 0}, {1, 2, 50, 5}, {1, 3, 50, 3},
		{2, 4, 30, 2}, {2, 5, 30, 3}, {3, 5, 30, 1}, {3, 6, 30, 4},
		{4, 7, 20, 0}, {5, 7, 30, 0}, {6, 7, 20, 0},
	}
	for _, a := range arcs {
		_, err := g.AddArc(a.tail, a.head, a.cap, a.cost)
		require.NoError(t, err)
	}

	_, err := g.Solve(0, 7, 70)
	require.NoError(t, err)

	for node := 1; node < 7; node++ {
		var in, out int64
		for _, idx := range g.IncomingArcs(node) {
			in += g.ArcAt(idx).Flow()
		}
		for _, idx := range g.ForwardArcs(node) {
			out += g.ArcAt(idx).Flow()
		}
		assert.Equal(t, in, out, "node %d: inflow %d != outflow %d", node, in, out)
	}
}

