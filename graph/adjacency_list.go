package graph

import "fmt"

// New returns a graph with n isolated vertices. A negative n is treated as 0.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}

	return &Graph{
		n:    n,
		adj:  make([][]int, n),
		deg:  make([]int, n),
		mult: make(map[pair]int),
	}
}

// AddEdge appends the edge u–v and returns its index.
func (g *Graph) AddEdge(u, v int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return -1, fmt.Errorf("AddEdge(%d, %d): %w", u, v, ErrVertexRange)
	}
	id := len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.alive = append(g.alive, true)
	g.live++
	g.adj[u] = append(g.adj[u], id)
	g.adj[v] = append(g.adj[v], id) // a loop lands in adj[u] twice
	g.deg[u]++
	g.deg[v]++
	g.mult[key(u, v)]++

	return id, nil
}

// RemoveEdges deletes every parallel copy of u–v and returns how many were
// removed. Indices of other edges are unchanged.
func (g *Graph) RemoveEdges(u, v int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return 0
	}
	k := key(u, v)
	if g.mult[k] == 0 {
		return 0
	}

	removed := 0
	for _, id := range g.adj[u] {
		e := g.edges[id]
		if !g.alive[id] || key(e.U, e.V) != k {
			continue
		}
		g.alive[id] = false
		g.deg[e.U]--
		g.deg[e.V]--
		removed++
	}
	g.live -= removed
	delete(g.mult, k)
	g.adj[u] = g.liveOnly(g.adj[u])
	if v != u {
		g.adj[v] = g.liveOnly(g.adj[v])
	}

	return removed
}

// liveOnly filters ids in place, keeping live edges.
func (g *Graph) liveOnly(ids []int) []int {
	out := ids[:0]
	for _, id := range ids {
		if g.alive[id] {
			out = append(out, id)
		}
	}

	return out
}

// Compact renumbers the live edges 0..EdgeCount()-1, preserving their order.
func (g *Graph) Compact() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.live == len(g.edges) {
		return
	}
	edges := make([]Edge, 0, g.live)
	for id, e := range g.edges {
		if g.alive[id] {
			edges = append(edges, e)
		}
	}
	g.rebuild(edges)
}

// rebuild resets the edge storage to edges.
func (g *Graph) rebuild(edges []Edge) {
	g.edges = edges
	g.alive = make([]bool, len(edges))
	g.live = len(edges)
	g.adj = make([][]int, g.n)
	g.deg = make([]int, g.n)
	g.mult = make(map[pair]int, len(edges))
	for id, e := range edges {
		g.alive[id] = true
		g.adj[e.U] = append(g.adj[e.U], id)
		g.adj[e.V] = append(g.adj[e.V], id)
		g.deg[e.U]++
		g.deg[e.V]++
		g.mult[key(e.U, e.V)]++
	}
}

// Edges returns the live edges in ascending index order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.live)
	for id, e := range g.edges {
		if g.alive[id] {
			out = append(out, e)
		}
	}

	return out
}

// Neighbors returns the opposite endpoint of every live edge at v in
// insertion order. Parallel edges repeat the neighbour; a loop contributes
// v twice.
func (g *Graph) Neighbors(v int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if v < 0 || v >= g.n {
		return nil
	}
	out := make([]int, 0, len(g.adj[v]))
	for _, id := range g.adj[v] {
		if g.alive[id] {
			out = append(out, g.edges[id].Other(v))
		}
	}

	return out
}

// Degree returns the number of live edge ends at v (a loop counts twice).
func (g *Graph) Degree(v int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if v < 0 || v >= g.n {
		return 0
	}

	return g.deg[v]
}

// Multiplicity returns the number of live u–v edges.
func (g *Graph) Multiplicity(u, v int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.mult[key(u, v)]
}

// VertexCount returns n.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.live
}

// Clone returns a compacted deep copy.
func (g *Graph) Clone() *Graph {
	edges := g.Edges()
	c := New(g.n)
	c.rebuild(edges)

	return c
}
