package search

import (
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/atrail/rotation"
)

// vertexOrder returns the processing order for g.
func vertexOrder(g *rotation.Graph, ord Order) []int {
	n := g.VertexCount()
	switch ord {
	case OrderInput:
		out := make([]int, n)
		for v := range out {
			out[v] = v
		}
		return out
	case OrderDegree:
		out := make([]int, n)
		for v := range out {
			out[v] = v
		}
		sort.SliceStable(out, func(i, j int) bool {
			return g.Degree(out[i]) < g.Degree(out[j])
		})
		return out
	default:
		return connectedOrder(g)
	}
}

// priority is the ordering key of a not-yet-ordered vertex.
type priority struct {
	placed int // slots whose opposite end is already ordered
	degree int
	v      int
}

// byConstraint sorts the most constrained vertex first: more placed slots,
// then higher degree, then lower index.
func byConstraint(a, b interface{}) int {
	pa, pb := a.(priority), b.(priority)
	switch {
	case pa.placed != pb.placed:
		return pb.placed - pa.placed
	case pa.degree != pb.degree:
		return pb.degree - pa.degree
	default:
		return pa.v - pb.v
	}
}

// connectedOrder grows the order from the highest-degree vertex, always
// taking the vertex with the most edges into the ordered set. Fragments then
// close as early as possible, which is where premature cycles are pruned.
// Time O((n + m) log n).
func connectedOrder(g *rotation.Graph) []int {
	n := g.VertexCount()
	keys := make([]priority, n)
	done := make([]bool, n)
	tree := redblacktree.NewWith(byConstraint)
	for v := 0; v < n; v++ {
		keys[v] = priority{placed: 0, degree: g.Degree(v), v: v}
		tree.Put(keys[v], v)
	}

	out := make([]int, 0, n)
	for !tree.Empty() {
		best := tree.Left()
		v := best.Value.(int)
		tree.Remove(best.Key)
		done[v] = true
		out = append(out, v)

		for _, u := range g.Neighbors(v) {
			if done[u] {
				continue
			}
			tree.Remove(keys[u])
			keys[u].placed++
			tree.Put(keys[u], u)
		}
	}

	return out
}
