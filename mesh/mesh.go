// Package mesh turns polygon meshes into the graphs the A-trail pipeline
// works on.
//
// Graph extracts the simple edge graph of a mesh (one edge per adjacent
// vertex pair). Rotation reads the embedding the mesh surface already
// carries: around every vertex, the faces meeting there are chained corner to
// corner, which yields the cyclic order of its neighbours (a "vcode"). For a
// consistently oriented closed mesh the result is the rotation system of the
// surface; boundary vertices get the open fan completed from both sides.
//
// Platonic returns the five Platonic solids as oriented meshes for demos and
// tests.
package mesh

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/atrail/graph"
	"github.com/katalvlaran/atrail/ply"
)

var (
	// ErrNonManifold indicates a vertex whose face corners do not chain into
	// a single fan (pinched vertex, inconsistent orientation, repeated corner).
	ErrNonManifold = errors.New("mesh: non-manifold vertex")

	// ErrUnusedVertex indicates a vertex that no face touches.
	ErrUnusedVertex = errors.New("mesh: vertex without faces")

	// ErrNilMesh is returned for a nil mesh.
	ErrNilMesh = errors.New("mesh: nil mesh")
)

// Graph returns the simple graph of m: every pair of consecutive face corners
// becomes one edge, in face order, the first occurrence of a pair winning.
// Isolated vertices are kept.
func Graph(m *ply.Mesh) (*graph.Graph, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	g := graph.New(m.Vertices)
	for fi, f := range m.Faces {
		for j := range f {
			u, v := f[j], f[(j+1)%len(f)]
			if u == v || g.Multiplicity(u, v) > 0 {
				continue
			}
			if _, err := g.AddEdge(u, v); err != nil {
				return nil, fmt.Errorf("face %d: %w", fi, err)
			}
		}
	}

	return g, nil
}

// corner is the view of one face from one of its vertices: the face
// boundary arrives from back and leaves towards forw.
type corner struct {
	back, forw int
}

// corners collects, per vertex, the corners of every face in face order.
func corners(m *ply.Mesh) [][]corner {
	out := make([][]corner, m.Vertices)
	for _, f := range m.Faces {
		k := len(f)
		for j, v := range f {
			out[v] = append(out[v], corner{back: f[(j+k-1)%k], forw: f[(j+1)%k]})
		}
	}

	return out
}

// Rotation returns the vertex rotation of m: for every vertex, its
// neighbours in the cyclic order in which the faces around it meet.
//
// Steps per vertex:
//  1. Start from its first corner: [back, forw].
//  2. Walk forwards: the next corner is the one whose back is the current
//     last neighbour; stop when its forw is the first neighbour (closed fan)
//     or no such corner exists (boundary).
//  3. On a boundary, walk backwards from the first neighbour until every
//     distinct neighbour is placed.
//
// Every corner is used at most once, so a walk that revisits one or leaves
// neighbours unplaced means the vertex is not a manifold vertex.
func Rotation(m *ply.Mesh) ([][]int, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	all := corners(m)
	out := make([][]int, m.Vertices)
	for v, cs := range all {
		rot, err := fan(cs)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v, err)
		}
		out[v] = rot
	}

	return out, nil
}

// fan chains the corners of one vertex.
func fan(cs []corner) ([]int, error) {
	if len(cs) == 0 {
		return nil, ErrUnusedVertex
	}
	distinct := make(map[int]struct{}, 2*len(cs))
	for _, c := range cs {
		distinct[c.back] = struct{}{}
		distinct[c.forw] = struct{}{}
	}
	used := make([]bool, len(cs))
	placed := make(map[int]struct{}, len(distinct))
	place := func(x int) error {
		if _, dup := placed[x]; dup {
			return ErrNonManifold
		}
		placed[x] = struct{}{}
		return nil
	}

	// 1) Seed.
	used[0] = true
	rot := []int{cs[0].back, cs[0].forw}
	if err := place(rot[0]); err != nil {
		return nil, err
	}
	if err := place(rot[1]); err != nil {
		return nil, err
	}

	// 2) Forwards.
	closed := false
	for {
		k := find(cs, used, func(c corner) bool { return c.back == rot[len(rot)-1] })
		if k < 0 {
			break
		}
		used[k] = true
		if cs[k].forw == rot[0] {
			closed = true
			break
		}
		if err := place(cs[k].forw); err != nil {
			return nil, err
		}
		rot = append(rot, cs[k].forw)
	}

	// 3) Backwards from the first neighbour.
	for !closed && len(rot) < len(distinct) {
		k := find(cs, used, func(c corner) bool { return c.forw == rot[0] })
		if k < 0 {
			return nil, ErrNonManifold
		}
		used[k] = true
		if err := place(cs[k].back); err != nil {
			return nil, err
		}
		rot = append([]int{cs[k].back}, rot...)
	}

	if len(rot) != len(distinct) {
		return nil, ErrNonManifold
	}
	for _, u := range used {
		if !u {
			return nil, ErrNonManifold
		}
	}

	return rot, nil
}

// find returns the first unused corner satisfying ok, or -1.
func find(cs []corner, used []bool, ok func(corner) bool) int {
	for k, c := range cs {
		if !used[k] && ok(c) {
			return k
		}
	}

	return -1
}
