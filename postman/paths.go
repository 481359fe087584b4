package postman

import "github.com/katalvlaran/atrail/graph"

// tree is a breadth-first shortest-path tree with unit edge weights.
type tree struct {
	dist []int // -1 if unreachable
	pred []int // -1 for the root and unreachable vertices
}

// shortestPaths runs BFS from src. Neighbours are expanded in insertion
// order, which fixes the tie-breaking between equally short paths.
// Complexity: O(V + E).
func shortestPaths(g *graph.Graph, src int) tree {
	n := g.VertexCount()
	t := tree{dist: make([]int, n), pred: make([]int, n)}
	for v := 0; v < n; v++ {
		t.dist[v] = -1
		t.pred[v] = -1
	}
	t.dist[src] = 0

	queue := make([]int, 0, n)
	queue = append(queue, src)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range g.Neighbors(u) {
			if t.dist[v] >= 0 {
				continue
			}
			t.dist[v] = t.dist[u] + 1
			t.pred[v] = u
			queue = append(queue, v)
		}
	}

	return t
}

// path returns the vertices from dst back to the root of t (dst first).
func (t tree) path(dst int) []int {
	var out []int
	for v := dst; v >= 0; v = t.pred[v] {
		out = append(out, v)
	}

	return out
}
