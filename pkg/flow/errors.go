package flow

import "cdnflow/pkg/apperror"

// Sentinel-style errors returned by Graph's exported operations. Each wraps
// an apperror.ErrorCode so callers can branch on apperror.Code(err) without
// depending on these package-level values directly, matching the taxonomy
// carried over from the teacher's error package.
var (
	// ErrInvalidNode is returned when a node argument falls outside [0, N).
	ErrInvalidNode = apperror.New(apperror.CodeInvalidNode, "node out of range")

	// ErrSelfLoop is returned by AddArc when tail == head.
	ErrSelfLoop = apperror.New(apperror.CodeSelfLoop, "self-loops are not supported")

	// ErrInvalidCapacity is returned when a requested capacity is negative.
	ErrInvalidCapacity = apperror.New(apperror.CodeInvalidCapacity, "capacity cannot be negative")

	// ErrSameEndpoints is returned by Solve when source == sink.
	ErrSameEndpoints = apperror.New(apperror.CodeSameEndpoints, "source and sink cannot be the same node")

	// ErrNegativeDemand is returned by Solve when demand < 0.
	ErrNegativeDemand = apperror.New(apperror.CodeNegativeDemand, "demand cannot be negative")

	// ErrInvalidArc is returned by ArcFlow for an out-of-range arc index.
	ErrInvalidArc = apperror.New(apperror.CodeInvalidArc, "arc index out of range")
)
