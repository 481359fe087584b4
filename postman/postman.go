// Package postman makes a connected graph Eulerian the way the Chinese
// postman construction does: the odd-degree vertices are paired by a
// minimum-weight perfect matching on shortest-path distances, and every
// matched pair gets the edges of one shortest path duplicated.
//
// Steps of Eulerize:
//  1. Reject graphs with more than one connected component.
//  2. Collect odd vertices; an even graph is returned as a copy.
//  3. BFS (unit weights) from every odd vertex.
//  4. Match the odd vertices (see Match).
//  5. Walk each matched pair's BFS path and add one copy of every path edge.
//     A vertex pair never holds more than two copies: when it already has
//     two, both are removed before the new one is added, which keeps every
//     degree parity the same as adding a third copy would.
//  6. Check that every degree is even.
//
// Circuit walks an Eulerian multigraph with Hierholzer's algorithm.
package postman

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/atrail/graph"
)

var (
	// ErrDisconnected indicates a graph with more than one component
	// (isolated vertices count as components).
	ErrDisconnected = errors.New("postman: graph is not connected")

	// ErrNotEulerian indicates odd degrees left after augmentation, or a
	// Circuit call on a graph that is not Eulerian.
	ErrNotEulerian = errors.New("postman: graph is not Eulerian")

	// ErrNilGraph is returned for a nil graph.
	ErrNilGraph = errors.New("postman: nil graph")
)

// maxCopies is the largest multiplicity Eulerize leaves on a vertex pair.
const maxCopies = 2

// Eulerize returns an Eulerian multigraph that contains g's edges (except
// pairs collapsed by the copy cap) followed by the duplicated path edges.
// The result is compacted; g is not modified.
func Eulerize(g *graph.Graph) (*graph.Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if count, _ := g.Components(); count != 1 {
		return nil, fmt.Errorf("Eulerize: %d components: %w", count, ErrDisconnected)
	}

	out := g.Clone()
	odd := g.OddVertices()
	if len(odd) == 0 {
		return out, nil
	}

	// 1) Distances between odd vertices.
	trees := make([]tree, len(odd))
	dist := make([][]int, len(odd))
	for i, s := range odd {
		trees[i] = shortestPaths(g, s)
		dist[i] = make([]int, len(odd))
		for j, t := range odd {
			dist[i][j] = trees[i].dist[t]
		}
	}

	// 2) Pair them and duplicate each pair's path.
	pos := make(map[int]int, len(odd))
	for i, s := range odd {
		pos[s] = i
	}
	for _, p := range Match(odd, dist) {
		walk := trees[pos[p[0]]].path(p[1])
		for k := 0; k+1 < len(walk); k++ {
			if err := addCopy(out, walk[k], walk[k+1]); err != nil {
				return nil, err
			}
		}
	}
	out.Compact()

	if !out.IsEven() {
		return nil, fmt.Errorf("Eulerize: odd vertices %v remain: %w", out.OddVertices(), ErrNotEulerian)
	}

	return out, nil
}

// addCopy adds one u–v edge, first dropping the pair's copies if it holds
// exactly maxCopies. Removing an even number of copies keeps the parity flip
// of the added edge.
func addCopy(g *graph.Graph, u, v int) error {
	if g.Multiplicity(u, v) == maxCopies {
		g.RemoveEdges(u, v)
	}
	_, err := g.AddEdge(u, v)

	return err
}
