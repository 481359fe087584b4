// Package graph provides the small undirected multigraph the mesh pipeline
// works on: vertices are dense integers 0..n-1, edges keep their insertion
// index, and parallel edges and self-loops are allowed.
//
// Edge indices are stable: RemoveEdges leaves a hole that Edges skips and
// Compact closes. This lets callers hold on to the index returned by AddEdge
// across removals (the postman step relies on it).
//
// A Graph is safe for concurrent readers; writers take an exclusive lock.
package graph

import (
	"errors"
	"sync"
)

// ErrVertexRange indicates a vertex outside 0..n-1.
var ErrVertexRange = errors.New("graph: vertex out of range")

// Edge is an undirected edge between U and V (U == V for a loop).
type Edge struct {
	U, V int
}

// Other returns the endpoint of e opposite to x.
func (e Edge) Other(x int) int {
	if e.U == x {
		return e.V
	}

	return e.U
}

// pair is the canonical (low, high) key of an unordered vertex pair.
type pair struct{ lo, hi int }

func key(u, v int) pair {
	if u > v {
		u, v = v, u
	}

	return pair{u, v}
}

// Graph is an undirected multigraph over vertices 0..n-1.
type Graph struct {
	mu    sync.RWMutex
	n     int
	edges []Edge
	alive []bool
	live  int
	adj   [][]int // vertex → incident edge indices; a loop is listed twice
	deg   []int
	mult  map[pair]int
}
