package format

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/katalvlaran/atrail/graph"
)

// ReadDIMACS parses a DIMACS edge file into a multigraph. Exactly one
// "p edge N M" line must precede the edges, and exactly M edges must follow.
// Edges keep their file order, so edge i of the file is edge i of the graph.
func ReadDIMACS(r io.Reader) (*graph.Graph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read dimacs")
	}
	ast, err := parseDIMACS.ParseString("dimacs", terminated(string(src)))
	if err != nil {
		return nil, syntaxError("dimacs", err)
	}

	var (
		g        *graph.Graph
		declared int
	)
	for _, e := range ast.Entries {
		if e.Problem != nil {
			if g != nil {
				return nil, errors.Wrapf(ErrHeader, "dimacs line %d: repeated problem line", e.Pos.Line)
			}
			if e.Problem.Kind != "edge" || e.Problem.Nodes < 0 || e.Problem.Edges < 0 {
				return nil, errors.Wrapf(ErrHeader, "dimacs line %d: want \"p edge N M\"", e.Pos.Line)
			}
			g = graph.New(e.Problem.Nodes)
			declared = e.Problem.Edges
			continue
		}
		if g == nil {
			return nil, errors.Wrapf(ErrHeader, "dimacs line %d: edge before problem line", e.Pos.Line)
		}
		n := g.VertexCount()
		u, v := e.Edge.U, e.Edge.V
		if u < 1 || u > n || v < 1 || v > n {
			return nil, errors.Wrapf(ErrVertexRange, "dimacs line %d: edge %d %d outside 1..%d", e.Pos.Line, u, v, n)
		}
		if _, err = g.AddEdge(u-1, v-1); err != nil {
			return nil, errors.Wrapf(err, "dimacs line %d", e.Pos.Line)
		}
	}
	if g == nil {
		return nil, errors.Wrap(ErrHeader, "dimacs: missing problem line")
	}
	if g.EdgeCount() != declared {
		return nil, errors.Wrapf(ErrCountMismatch, "dimacs: problem line declares %d edges, body has %d", declared, g.EdgeCount())
	}

	return g, nil
}

// WriteDIMACS writes g with 1-based vertices, preceded by one "c" line per
// comment.
func WriteDIMACS(w io.Writer, g *graph.Graph, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		bw.WriteString("c ")
		bw.WriteString(c)
		bw.WriteByte('\n')
	}
	edges := g.Edges()
	bw.WriteString("p edge ")
	bw.WriteString(strconv.Itoa(g.VertexCount()))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(len(edges)))
	bw.WriteByte('\n')
	for _, e := range edges {
		bw.WriteString("e ")
		bw.WriteString(strconv.Itoa(e.U + 1))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(e.V + 1))
		bw.WriteByte('\n')
	}

	return errors.Wrap(bw.Flush(), "write dimacs")
}
