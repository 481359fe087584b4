package search

import (
	"fmt"

	"github.com/katalvlaran/atrail/meander"
	"github.com/katalvlaran/atrail/rotation"
)

const (
	methodExtract        = "Extract"
	methodVerify         = "Verify"
	methodVerifyPartners = "VerifyPartners"

	// maxLoopsPerVertex bounds the orientation search Verify runs for
	// self-loops, whose direction a trail does not record.
	maxLoopsPerVertex = 16
)

// Extract turns a complete end-to-end transition assignment into a trail.
// partner[x] is the end that follows end x's vertex visit (as returned by the
// fragment tracker); every end must be linked.
//
// The walk starts at end 0, so the first trail vertex is the vertex of end 0
// of edge 0 and the first edge is edge 0. Each step traverses the current
// edge, then follows the transition at the arrival end. The walk must return
// to end 0 after exactly m edges.
func Extract(g *rotation.Graph, partner []int) (Trail, error) {
	if g == nil {
		return Trail{}, fmt.Errorf("%s: %w: %w", methodExtract, ErrInvalidInput, ErrNilGraph)
	}
	m := g.EdgeCount()
	if len(partner) != 2*m {
		return Trail{}, fmt.Errorf("%s: %w: %d ends for %d edges", methodExtract, ErrNotATrail, len(partner), m)
	}

	t := Trail{
		Edges:    make([]int, 0, m),
		Vertices: make([]int, 0, m+1),
	}
	cur := 0
	for {
		if len(t.Edges) == m {
			return Trail{}, fmt.Errorf("%s: %w: walk does not close after %d edges", methodExtract, ErrNotATrail, m)
		}
		t.Edges = append(t.Edges, cur>>1)
		t.Vertices = append(t.Vertices, g.EndVertex(cur))

		arrive := cur ^ 1
		next := partner[arrive]
		if next < 0 || next >= 2*m {
			return Trail{}, fmt.Errorf("%s: %w: end %d has no transition", methodExtract, ErrNotATrail, arrive)
		}
		if g.EndVertex(next) != g.EndVertex(arrive) {
			return Trail{}, fmt.Errorf("%s: %w: transition %d→%d leaves vertex %d",
				methodExtract, ErrNotATrail, arrive, next, g.EndVertex(arrive))
		}
		cur = next
		if cur == 0 {
			break
		}
	}
	if len(t.Edges) != m {
		return Trail{}, fmt.Errorf("%s: %w: closed after %d of %d edges", methodExtract, ErrNotATrail, len(t.Edges), m)
	}
	t.Vertices = append(t.Vertices, t.Vertices[0])

	return t, nil
}

// VerifyPartners checks a complete end-to-end transition assignment: every
// end is paired with a different end at the same vertex, the pairs at each
// vertex form a non-crossing matching of its rotation, and following them
// from end 0 walks all m edges in one closed trail. Slot positions are exact
// here, so self-loops need no orientation guessing. Errors wrap ErrNotATrail.
func VerifyPartners(g *rotation.Graph, partner []int) error {
	if g == nil {
		return fmt.Errorf("%s: %w: %w", methodVerifyPartners, ErrInvalidInput, ErrNilGraph)
	}
	m := g.EdgeCount()
	if len(partner) != 2*m {
		return fmt.Errorf("%s: %w: %d ends for %d edges", methodVerifyPartners, ErrNotATrail, len(partner), m)
	}

	// 1) Pairs are symmetric, local and non-crossing.
	for v := 0; v < g.VertexCount(); v++ {
		off := g.Offset(v)
		local := make([]int, g.Degree(v))
		for i := range local {
			x := g.SlotEnd(off + i)
			y := partner[x]
			if y < 0 || y >= 2*m || y == x || partner[y] != x || g.EndVertex(y) != v {
				return fmt.Errorf("%s: %w: end %d at vertex %d is not paired at that vertex",
					methodVerifyPartners, ErrNotATrail, x, v)
			}
			local[i] = g.EndSlot(y) - off
		}
		if !meander.IsNonCrossing(local) {
			return fmt.Errorf("%s: %w: transitions at vertex %d cross", methodVerifyPartners, ErrNotATrail, v)
		}
	}

	// 2) One closed trail through every edge.
	if _, err := Extract(g, partner); err != nil {
		return fmt.Errorf("%s: %w", methodVerifyPartners, err)
	}

	return nil
}

// Verify checks that t is an A-trail of g: every edge exactly once, each edge
// joins the vertices listed around it, the trail is closed, and the
// transitions it induces at every vertex form a non-crossing matching of that
// vertex's rotation. Errors wrap ErrNotATrail.
//
// A trail does not record which way a self-loop was walked, so every
// orientation of a vertex's loops is tried; a vertex with more than 16 loops
// is rejected. VerifyPartners has no such limit.
func Verify(g *rotation.Graph, t Trail) error {
	if g == nil {
		return fmt.Errorf("%s: %w: %w", methodVerify, ErrInvalidInput, ErrNilGraph)
	}
	m := g.EdgeCount()

	// 1) Shape.
	if len(t.Edges) != m || len(t.Vertices) != m+1 {
		return fmt.Errorf("%s: %w: %d edges and %d vertices for %d edges",
			methodVerify, ErrNotATrail, len(t.Edges), len(t.Vertices), m)
	}
	if t.Vertices[0] != t.Vertices[m] {
		return fmt.Errorf("%s: %w: trail is not closed", methodVerify, ErrNotATrail)
	}

	// 2) Edges once each, endpoints consistent; dep[i] is the end step i
	// leaves from.
	seen := make([]bool, m)
	dep := make([]int, m)
	loopsAt := make(map[int][]int)
	for i, e := range t.Edges {
		if e < 0 || e >= m {
			return fmt.Errorf("%s: %w: edge %d out of range", methodVerify, ErrNotATrail, e)
		}
		if seen[e] {
			return fmt.Errorf("%s: %w: edge %d repeated", methodVerify, ErrNotATrail, e)
		}
		seen[e] = true

		a, b := g.Endpoints(e)
		from, to := t.Vertices[i], t.Vertices[i+1]
		switch {
		case a == from && b == to:
			dep[i] = 2 * e
		case b == from && a == to:
			dep[i] = 2*e + 1
		default:
			return fmt.Errorf("%s: %w: edge %d does not join %d and %d", methodVerify, ErrNotATrail, e, from, to)
		}
		if a == b {
			loopsAt[a] = append(loopsAt[a], i)
		}
	}

	// 3) Transitions. Boundary k joins the arrival end of step k with the
	// departure end of step k+1, at vertex Vertices[k+1].
	boundaries := make([][]int, g.VertexCount())
	for k := 0; k < m; k++ {
		v := t.Vertices[k+1]
		boundaries[v] = append(boundaries[v], k)
	}
	for v := 0; v < g.VertexCount(); v++ {
		if err := verifyVertex(g, v, t.Vertices, dep, boundaries[v], loopsAt[v]); err != nil {
			return fmt.Errorf("%s: %w", methodVerify, err)
		}
	}

	return nil
}

// verifyVertex checks the transitions at v. A self-loop at v may have been
// walked either way round, so every orientation of v's loops is tried.
func verifyVertex(g *rotation.Graph, v int, vertices, dep, bounds, loops []int) error {
	if len(loops) > maxLoopsPerVertex {
		return fmt.Errorf("%w: vertex %d has %d self-loops, cannot orient more than %d",
			ErrNotATrail, v, len(loops), maxLoopsPerVertex)
	}
	m := len(dep)
	off := g.Offset(v)
	local := make([]int, g.Degree(v))

	for mask := 0; mask < 1<<len(loops); mask++ {
		for bit, i := range loops {
			e := dep[i] >> 1
			dep[i] = 2*e + (mask>>bit)&1
		}
		for s := range local {
			local[s] = -1
		}
		ok := true
		for _, k := range bounds {
			x := g.EndSlot(dep[k]^1) - off
			y := g.EndSlot(dep[(k+1)%m]) - off
			if x < 0 || x >= len(local) || y < 0 || y >= len(local) || local[x] >= 0 || local[y] >= 0 {
				ok = false
				break
			}
			local[x], local[y] = y, x
		}
		if ok && meander.IsNonCrossing(local) {
			return nil
		}
	}

	return fmt.Errorf("%w: transitions at vertex %d (trail position %d) cross or overlap",
		ErrNotATrail, v, firstVisit(vertices, v))
}

// firstVisit returns the first position of v in vertices, or -1.
func firstVisit(vertices []int, v int) int {
	for i, u := range vertices {
		if u == v {
			return i
		}
	}

	return -1
}
