// Package embed turns a vertex rotation (vcode) of a simple graph into an
// edge code for an Eulerian multigraph built on top of it.
//
// The vcode fixes, for every vertex, the cyclic order of its neighbours. The
// multigraph (typically the output of postman.Eulerize) contains every vcode
// adjacency once plus zero or more parallel copies. EdgeCode places each copy
// next to the edge it duplicates, so the copies of u–v form one contiguous
// run in both rotations, and the run at u is the mirror image of the run at v.
// That keeps the embedding planar: parallel edges drawn side by side never
// cross.
//
// Within a run the first copy found in edge order (the original) sits at the
// outside: at the lower-numbered endpoint the run reads ck … c1 orig, at the
// higher-numbered endpoint orig c1 … ck.
//
// Errors:
//
//   - ErrVertexCount     vcode and graph disagree on the number of vertices
//   - ErrSelfLoop        the multigraph contains a loop (no vcode slot for it)
//   - ErrMissingNeighbor an edge u–v whose v does not appear in vcode[u]
//   - ErrUnassigned      a vcode slot that no edge fills
//
// Complexity: O(V + E) once the per-vertex neighbour index is built
// (O(Σ deg) map inserts).
package embed

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/atrail/graph"
)

const methodEdgeCode = "EdgeCode"

var (
	// ErrVertexCount indicates a vcode whose length differs from the graph's
	// vertex count.
	ErrVertexCount = errors.New("embed: vertex count mismatch")

	// ErrSelfLoop indicates a loop edge, which a vcode cannot place.
	ErrSelfLoop = errors.New("embed: self-loop")

	// ErrMissingNeighbor indicates an edge whose endpoint is absent from the
	// other endpoint's vcode line.
	ErrMissingNeighbor = errors.New("embed: neighbour missing from vcode")

	// ErrUnassigned indicates a vcode slot without any edge.
	ErrUnassigned = errors.New("embed: vcode slot has no edge")

	// ErrNilGraph is returned for a nil graph.
	ErrNilGraph = errors.New("embed: nil graph")
)

// run is the group of parallel edges filling one vcode slot.
type run struct {
	orig   int   // first edge of the pair, -1 while the slot is empty
	copies []int // further parallel edges in edge order
}

// EdgeCode returns the edge code of g under the rotation vcode. Row v lists
// the edge indices of g incident to v; vcode and g are not modified.
func EdgeCode(vcode [][]int, g *graph.Graph) ([][]int, error) {
	// 1) Validate shapes.
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.VertexCount()
	if len(vcode) != n {
		return nil, fmt.Errorf("%s: vcode has %d vertices, graph %d: %w",
			methodEdgeCode, len(vcode), n, ErrVertexCount)
	}

	// 2) Index the first position of every neighbour per vertex.
	slot := make([]map[int]int, n)
	runs := make([][]run, n)
	for v, row := range vcode {
		slot[v] = make(map[int]int, len(row))
		runs[v] = make([]run, len(row))
		for i, u := range row {
			if _, dup := slot[v][u]; !dup {
				slot[v][u] = i
			}
			runs[v][i].orig = -1
		}
	}

	// 3) Drop each edge into its slot at both endpoints. Runs are keyed by the
	// unordered pair, so both endpoints see the same edge order.
	for id, e := range g.Edges() {
		if e.U == e.V {
			return nil, fmt.Errorf("%s: edge %d at vertex %d: %w", methodEdgeCode, id, e.U, ErrSelfLoop)
		}
		for _, end := range [2][2]int{{e.U, e.V}, {e.V, e.U}} {
			v, u := end[0], end[1]
			i, ok := slot[v][u]
			if !ok {
				return nil, fmt.Errorf("%s: edge %d (%d-%d): vertex %d not listed at %d: %w",
					methodEdgeCode, id, e.U, e.V, u, v, ErrMissingNeighbor)
			}
			r := &runs[v][i]
			if r.orig < 0 {
				r.orig = id
			} else {
				r.copies = append(r.copies, id)
			}
		}
	}

	// 4) Emit rows, mirroring the run at the lower endpoint.
	code := make([][]int, n)
	for v, row := range vcode {
		out := make([]int, 0, g.Degree(v))
		for i, u := range row {
			r := runs[v][i]
			if r.orig < 0 {
				return nil, fmt.Errorf("%s: vertex %d position %d (neighbour %d): %w",
					methodEdgeCode, v, i, u, ErrUnassigned)
			}
			if v < u {
				for k := len(r.copies) - 1; k >= 0; k-- {
					out = append(out, r.copies[k])
				}
				out = append(out, r.orig)
			} else {
				out = append(out, r.orig)
				out = append(out, r.copies...)
			}
		}
		code[v] = out
	}

	return code, nil
}
