package embed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atrail/embed"
	"github.com/katalvlaran/atrail/graph"
	"github.com/katalvlaran/atrail/mesh"
	"github.com/katalvlaran/atrail/postman"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

func build(t *testing.T, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g := graph.New(n)
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}

	return g
}

func TestEdgeCode_TetrahedronWithCopies(t *testing.T) {
	vcode := [][]int{{1, 2, 3}, {2, 0, 3}, {0, 1, 3}, {1, 0, 2}}
	g := build(t, 4, [][2]int{
		{0, 2}, {2, 1}, {1, 0}, {1, 3}, {3, 0}, {2, 3},
		{1, 0}, {3, 2}, // postman copies
	})

	code, err := embed.EdgeCode(vcode, g)
	require.NoError(t, err)
	require.Equal(t, [][]int{{6, 2, 0, 4}, {1, 2, 6, 3}, {0, 1, 7, 5}, {3, 4, 5, 7}}, code)

	res, err := search.SearchEdgeCode(code)
	require.NoError(t, err)
	require.Equal(t, search.Found, res.State)
}

func TestEdgeCode_RunsAreMirrored(t *testing.T) {
	g := build(t, 2, [][2]int{{0, 1}, {1, 0}, {0, 1}})

	code, err := embed.EdgeCode([][]int{{1}, {0}}, g)
	require.NoError(t, err)
	require.Equal(t, [][]int{{2, 1, 0}, {0, 1, 2}}, code)
}

func TestEdgeCode_Errors(t *testing.T) {
	triangle := [][]int{{1, 2}, {2, 0}, {0, 1}}

	_, err := embed.EdgeCode(triangle, build(t, 2, nil))
	require.ErrorIs(t, err, embed.ErrVertexCount)

	_, err = embed.EdgeCode(triangle, build(t, 3, [][2]int{{0, 1}, {1, 1}}))
	require.ErrorIs(t, err, embed.ErrSelfLoop)

	_, err = embed.EdgeCode([][]int{{1}, {0}, {}}, build(t, 3, [][2]int{{0, 2}}))
	require.ErrorIs(t, err, embed.ErrMissingNeighbor)

	_, err = embed.EdgeCode(triangle, build(t, 3, [][2]int{{0, 1}, {1, 2}}))
	require.ErrorIs(t, err, embed.ErrUnassigned)

	_, err = embed.EdgeCode(triangle, nil)
	require.ErrorIs(t, err, embed.ErrNilGraph)
}

func TestEdgeCode_PlatonicPipeline(t *testing.T) {
	for _, name := range mesh.PlatonicNames() {
		t.Run(name.String(), func(t *testing.T) {
			m, err := mesh.Platonic(name)
			require.NoError(t, err)
			simple, err := mesh.Graph(m)
			require.NoError(t, err)
			vcode, err := mesh.Rotation(m)
			require.NoError(t, err)
			euler, err := postman.Eulerize(simple)
			require.NoError(t, err)

			code, err := embed.EdgeCode(vcode, euler)
			require.NoError(t, err)
			rg, err := rotation.New(code)
			require.NoError(t, err)
			require.Equal(t, euler.EdgeCount(), rg.EdgeCount())
			for v := 0; v < rg.VertexCount(); v++ {
				require.Equal(t, euler.Degree(v), rg.Degree(v))
			}
		})
	}
}

func TestEdgeCode_OctahedronHasATrail(t *testing.T) {
	m, err := mesh.Platonic(mesh.Octahedron)
	require.NoError(t, err)
	simple, err := mesh.Graph(m)
	require.NoError(t, err)
	require.True(t, simple.IsEven())
	vcode, err := mesh.Rotation(m)
	require.NoError(t, err)

	code, err := embed.EdgeCode(vcode, simple)
	require.NoError(t, err)
	rg, err := rotation.New(code)
	require.NoError(t, err)
	res, err := search.Search(rg)
	require.NoError(t, err)
	require.NoError(t, search.Verify(rg, res.Trail))
}
