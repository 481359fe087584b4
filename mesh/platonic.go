package mesh

import (
	"errors"
	"strings"

	"github.com/katalvlaran/atrail/ply"
)

// ErrUnknownSolid is returned by Platonic for a name it does not know.
var ErrUnknownSolid = errors.New("mesh: unknown Platonic solid")

// PlatonicName enumerates the five Platonic solids.
type PlatonicName int

// Enum values (stable ordering).
const (
	Tetrahedron  PlatonicName = iota // V=4,  F=4 triangles
	Cube                             // V=8,  F=6 squares
	Octahedron                       // V=6,  F=8 triangles
	Dodecahedron                     // V=20, F=12 pentagons
	Icosahedron                      // V=12, F=20 triangles
)

// String returns the lower-case name used on the command line.
func (p PlatonicName) String() string {
	switch p {
	case Tetrahedron:
		return "tetrahedron"
	case Cube:
		return "cube"
	case Octahedron:
		return "octahedron"
	case Dodecahedron:
		return "dodecahedron"
	case Icosahedron:
		return "icosahedron"
	default:
		return "unknown"
	}
}

// PlatonicNames lists every solid in enum order.
func PlatonicNames() []PlatonicName {
	return []PlatonicName{Tetrahedron, Cube, Octahedron, Dodecahedron, Icosahedron}
}

// ParsePlatonic maps a case-insensitive name to a PlatonicName.
func ParsePlatonic(s string) (PlatonicName, error) {
	for _, p := range PlatonicNames() {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}

	return 0, ErrUnknownSolid
}

// platonicFaces holds outward-oriented face lists (counter-clockwise seen from
// outside). Every directed edge occurs in exactly one face and its reverse in
// exactly one other.
var platonicFaces = map[PlatonicName][][]int{
	Tetrahedron: {
		{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3},
	},

	// Bottom square 0-1-2-3, top square 4-5-6-7 with 4 above 0.
	Cube: {
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	},

	// Poles 0 (top) and 1 (bottom), equator ring 2-4-3-5.
	Octahedron: {
		{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
		{1, 4, 2}, {1, 3, 4}, {1, 5, 3}, {1, 2, 5},
	},

	// Poles 0 and 11, top ring 1..5, bottom ring 6..10; top vertex i meets
	// bottom vertices 5+i and 6+i (mod the ring).
	Icosahedron: {
		{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}, {0, 5, 1},
		{1, 6, 7}, {1, 7, 2}, {2, 7, 8}, {2, 8, 3}, {3, 8, 9},
		{3, 9, 4}, {4, 9, 10}, {4, 10, 5}, {5, 10, 6}, {5, 6, 1},
		{11, 7, 6}, {11, 8, 7}, {11, 9, 8}, {11, 10, 9}, {11, 6, 10},
	},
}

func init() {
	// The dodecahedron is the dual of the icosahedron: vertex f of the
	// dodecahedron is face f of the icosahedron.
	platonicFaces[Dodecahedron] = dual(&ply.Mesh{Vertices: 12, Faces: platonicFaces[Icosahedron]})
}

// Platonic returns a fresh copy of the named solid.
func Platonic(p PlatonicName) (*ply.Mesh, error) {
	faces, ok := platonicFaces[p]
	if !ok {
		return nil, ErrUnknownSolid
	}
	m := &ply.Mesh{Faces: make([][]int, len(faces))}
	for i, f := range faces {
		m.Faces[i] = append([]int(nil), f...)
		for _, v := range f {
			if v >= m.Vertices {
				m.Vertices = v + 1
			}
		}
	}

	return m, nil
}

// dual returns the faces of the dual of a closed oriented mesh. The dual face
// of vertex v lists the faces around v in the order their corners chain, so
// the dual keeps the orientation of m.
func dual(m *ply.Mesh) [][]int {
	type at struct{ v, f int }
	forw := make(map[at]int)
	back := make(map[at]int)
	around := make([][]int, m.Vertices)
	for fi, f := range m.Faces {
		k := len(f)
		for j, v := range f {
			forw[at{v, fi}] = f[(j+1)%k]
			back[at{v, fi}] = f[(j+k-1)%k]
			around[v] = append(around[v], fi)
		}
	}

	out := make([][]int, m.Vertices)
	for v, fs := range around {
		cycle := []int{fs[0]}
		for len(cycle) < len(fs) {
			want := forw[at{v, cycle[len(cycle)-1]}]
			next := -1
			for _, fi := range fs {
				if back[at{v, fi}] == want {
					next = fi
					break
				}
			}
			if next < 0 {
				break // open fan; only closed meshes are dualised
			}
			cycle = append(cycle, next)
		}
		out[v] = cycle
	}

	return out
}
