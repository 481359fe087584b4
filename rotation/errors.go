package rotation

import "errors"

// ErrInvalidInput classifies every rejection made by New. Callers branch on it
// with errors.Is; the wrapped detail sentinel names the exact cause.
var ErrInvalidInput = errors.New("rotation: invalid input")

// Detail sentinels. Each error returned by New wraps ErrInvalidInput and
// exactly one of these.
var (
	// ErrEmpty indicates an edge code without any vertex line.
	ErrEmpty = errors.New("rotation: empty edge code")

	// ErrIsolatedVertex indicates a vertex with an empty rotation.
	ErrIsolatedVertex = errors.New("rotation: isolated vertex")

	// ErrOddDegree indicates a vertex whose rotation has odd length.
	ErrOddDegree = errors.New("rotation: odd vertex degree")

	// ErrEdgeRange indicates an edge index outside 0..m-1.
	ErrEdgeRange = errors.New("rotation: edge index out of range")

	// ErrEdgeOccurrence indicates an edge index that does not occur exactly twice.
	ErrEdgeOccurrence = errors.New("rotation: edge must occur exactly twice")
)
