package rotation

import "fmt"

const methodNew = "New"

// Graph is an immutable Eulerian multigraph with a rotation system.
//
// All slices are built once by New and never mutated afterwards, so a single
// Graph may be shared by any number of concurrent searches.
type Graph struct {
	rot     [][]int // rot[v] = incident edge indices in rotational order
	offset  []int   // offset[v] = global slot of rot[v][0]
	slotEnd []int   // slot → end (2e or 2e+1)
	slotVtx []int   // slot → vertex
	endSlot []int   // end → slot
	maxDeg  int
}

// New validates the edge code rot and builds the Rotation Graph.
// rot is copied; the caller may reuse it afterwards.
func New(rot [][]int) (*Graph, error) {
	// 1) Shape: at least one vertex, every degree even and non-zero.
	n := len(rot)
	if n == 0 {
		return nil, fmt.Errorf("%s: %w: %w", methodNew, ErrInvalidInput, ErrEmpty)
	}
	total := 0
	for v, r := range rot {
		if len(r) == 0 {
			return nil, fmt.Errorf("%s: vertex %d: %w: %w", methodNew, v, ErrInvalidInput, ErrIsolatedVertex)
		}
		if len(r)%2 != 0 {
			return nil, fmt.Errorf("%s: vertex %d has degree %d: %w: %w", methodNew, v, len(r), ErrInvalidInput, ErrOddDegree)
		}
		total += len(r)
	}

	// 2) Every edge index in range and seen exactly twice. Even degrees make
	// total even, so m is exact.
	m := total / 2
	g := &Graph{
		rot:     make([][]int, n),
		offset:  make([]int, n),
		slotEnd: make([]int, total),
		slotVtx: make([]int, total),
		endSlot: make([]int, total),
	}
	seen := make([]int, m)
	slot := 0
	for v, r := range rot {
		g.rot[v] = append([]int(nil), r...)
		g.offset[v] = slot
		if len(r) > g.maxDeg {
			g.maxDeg = len(r)
		}
		for i, e := range r {
			if e < 0 || e >= m {
				return nil, fmt.Errorf("%s: vertex %d position %d: edge %d not in [0,%d): %w: %w",
					methodNew, v, i, e, m, ErrInvalidInput, ErrEdgeRange)
			}
			if seen[e] == 2 {
				return nil, fmt.Errorf("%s: edge %d occurs more than twice: %w: %w",
					methodNew, e, ErrInvalidInput, ErrEdgeOccurrence)
			}
			end := 2*e + seen[e]
			seen[e]++
			g.slotEnd[slot] = end
			g.slotVtx[slot] = v
			g.endSlot[end] = slot
			slot++
		}
	}
	// With 2m entries and no edge above two occurrences, every edge is at
	// exactly two.

	return g, nil
}

// VertexCount returns n.
func (g *Graph) VertexCount() int { return len(g.rot) }

// EdgeCount returns m.
func (g *Graph) EdgeCount() int { return len(g.slotEnd) / 2 }

// SlotCount returns 2m, the total number of rotation slots.
func (g *Graph) SlotCount() int { return len(g.slotEnd) }

// MaxDegree returns the largest vertex degree.
func (g *Graph) MaxDegree() int { return g.maxDeg }

// Degree returns the rotation length of v.
func (g *Graph) Degree(v int) int { return len(g.rot[v]) }

// Offset returns the global slot number of position 0 of v.
func (g *Graph) Offset(v int) int { return g.offset[v] }

// Slot returns the global slot number of position i at vertex v.
func (g *Graph) Slot(v, i int) int { return g.offset[v] + i }

// EdgeAt returns the edge stored at position i of v's rotation.
func (g *Graph) EdgeAt(v, i int) int { return g.rot[v][i] }

// SlotVertex returns the vertex owning slot s.
func (g *Graph) SlotVertex(s int) int { return g.slotVtx[s] }

// SlotEnd returns the edge end (2e or 2e+1) stored in slot s.
func (g *Graph) SlotEnd(s int) int { return g.slotEnd[s] }

// EndSlot returns the slot holding edge end x.
func (g *Graph) EndSlot(x int) int { return g.endSlot[x] }

// EndVertex returns the vertex at edge end x.
func (g *Graph) EndVertex(x int) int { return g.slotVtx[g.endSlot[x]] }

// Endpoints returns the vertices at ends 2e and 2e+1 of edge e.
func (g *Graph) Endpoints(e int) (int, int) {
	return g.EndVertex(2 * e), g.EndVertex(2*e + 1)
}

// Rotation returns a copy of v's rotation.
func (g *Graph) Rotation(v int) []int {
	return append([]int(nil), g.rot[v]...)
}

// Neighbors returns the opposite endpoint of every slot of v in rotational
// order. A self-loop contributes v twice.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, len(g.rot[v]))
	for i := range g.rot[v] {
		end := g.slotEnd[g.offset[v]+i]
		out[i] = g.EndVertex(end ^ 1)
	}

	return out
}

// EdgeCode returns a deep copy of the rotation system.
func (g *Graph) EdgeCode() [][]int {
	out := make([][]int, len(g.rot))
	for v := range g.rot {
		out[v] = g.Rotation(v)
	}

	return out
}
