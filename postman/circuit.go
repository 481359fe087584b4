package postman

import (
	"fmt"

	"github.com/katalvlaran/atrail/graph"
)

// Circuit returns an Eulerian circuit of g as a vertex walk starting and
// ending at start, using Hierholzer's algorithm in O(V + E). The walk has
// EdgeCount()+1 entries. It fails with ErrNotEulerian if a degree is odd or
// some edge is not reachable from start.
func Circuit(g *graph.Graph, start int) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if start < 0 || start >= g.VertexCount() {
		return nil, fmt.Errorf("Circuit(%d): %w", start, graph.ErrVertexRange)
	}
	if !g.IsEven() {
		return nil, fmt.Errorf("Circuit: odd vertices %v: %w", g.OddVertices(), ErrNotEulerian)
	}

	// Incidence lists of edge ids; a loop appears twice at its vertex.
	edges := g.Edges()
	inc := make([][]int, g.VertexCount())
	for id, e := range edges {
		inc[e.U] = append(inc[e.U], id)
		inc[e.V] = append(inc[e.V], id)
	}
	used := make([]bool, len(edges))
	next := make([]int, g.VertexCount()) // per-vertex cursor into inc

	circuit := make([]int, 0, len(edges)+1)
	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		for next[u] < len(inc[u]) && used[inc[u][next[u]]] {
			next[u]++
		}
		if next[u] == len(inc[u]) {
			// no more edges: backtrack
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
			continue
		}
		id := inc[u][next[u]]
		used[id] = true
		stack = append(stack, edges[id].Other(u))
	}

	if len(circuit) != len(edges)+1 {
		return nil, fmt.Errorf("Circuit: %d of %d edges reachable from %d: %w",
			len(circuit)-1, len(edges), start, ErrNotEulerian)
	}
	// Hierholzer emits the walk backwards.
	for i, j := 0, len(circuit)-1; i < j; i, j = i+1, j-1 {
		circuit[i], circuit[j] = circuit[j], circuit[i]
	}

	return circuit, nil
}
