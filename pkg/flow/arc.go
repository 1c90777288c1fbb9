// Package flow implements minimum-cost maximum-flow over a directed graph
// using the Successive Shortest Paths algorithm with an SPFA shortest-path
// probe tolerant of the negative residual costs introduced by flow
// cancellation edges.
package flow

import "cdnflow/pkg/apperror"

// Arc is a directed edge (tail, head) with an integer capacity and a
// per-unit cost. Flow is pushed and cancelled through Augment and Cancel;
// the forward/reverse residual accessors implement the standard MCMF
// residual-graph convention:
//
//	forward residual capacity  = capacity - flow
//	forward residual cost      = unitCost
//	reverse residual capacity  = flow
//	reverse residual cost      = -unitCost
//
// There is no separate twin edge stored for the reverse direction; Arc
// itself answers both directions, and the direction actually traversed
// during a probe is tracked by the caller (see spfa.go).
type Arc struct {
	tail, head int
	capacity   int64
	unitCost   int64
	flow       int64
}

// newArc constructs an Arc, rejecting a negative capacity.
func newArc(tail, head int, capacity, unitCost int64) (Arc, error) {
	if capacity < 0 {
		return Arc{}, apperror.Wrap(ErrInvalidCapacity, apperror.CodeInvalidCapacity,
			"arc capacity cannot be negative").WithField("capacity").WithDetails("capacity", capacity)
	}
	return Arc{tail: tail, head: head, capacity: capacity, unitCost: unitCost}, nil
}

// Tail returns the arc's source node.
func (a Arc) Tail() int { return a.tail }

// Head returns the arc's destination node.
func (a Arc) Head() int { return a.head }

// Capacity returns the arc's original (non-residual) capacity.
func (a Arc) Capacity() int64 { return a.capacity }

// UnitCost returns the arc's cost per unit of forward flow.
func (a Arc) UnitCost() int64 { return a.unitCost }

// Flow returns the flow currently pushed through the arc, in [0, capacity].
func (a Arc) Flow() int64 { return a.flow }

// ForwardResidualCapacity is the additional forward flow the arc can carry.
func (a Arc) ForwardResidualCapacity() int64 { return a.capacity - a.flow }

// ForwardResidualCost is the cost of pushing one more unit forward.
func (a Arc) ForwardResidualCost() int64 { return a.unitCost }

// ReverseResidualCapacity is the flow available to cancel.
func (a Arc) ReverseResidualCapacity() int64 { return a.flow }

// ReverseResidualCost is the cost of cancelling one unit of forward flow,
// the negative of unitCost since cancellation refunds what forward flow
// spent.
func (a Arc) ReverseResidualCost() int64 { return -a.unitCost }

// Augment pushes delta units of forward flow. The caller guarantees
// 0 < delta <= ForwardResidualCapacity().
func (a *Arc) Augment(delta int64) { a.flow += delta }

// Cancel withdraws delta units of forward flow. The caller guarantees
// 0 < delta <= ReverseResidualCapacity().
func (a *Arc) Cancel(delta int64) { a.flow -= delta }
