package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atrail/embed"
	"github.com/katalvlaran/atrail/mesh"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

var (
	// square is the 4-cycle 0-1-2-3-0 with edges 0:(0,1) 1:(1,2) 2:(2,3) 3:(3,0).
	square = [][]int{{0, 3}, {0, 1}, {1, 2}, {2, 3}}

	// twoTriangles is a disconnected pair of triangles.
	twoTriangles = [][]int{{0, 2}, {0, 1}, {1, 2}, {3, 5}, {3, 4}, {4, 5}}

	// tetraCode is the tetrahedron after postman doubled edges 0-1 and 2-3.
	tetraCode = [][]int{{6, 2, 0, 4}, {1, 2, 6, 3}, {0, 1, 7, 5}, {3, 4, 5, 7}}

	// bundle is two vertices joined by four parallel edges drawn side by side.
	bundle = [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}}
)

func mustGraph(t *testing.T, code [][]int) *rotation.Graph {
	t.Helper()
	g, err := rotation.New(code)
	require.NoError(t, err)

	return g
}

// octahedron returns the edge code of the octahedron surface.
func octahedron(t *testing.T) [][]int {
	t.Helper()
	m, err := mesh.Platonic(mesh.Octahedron)
	require.NoError(t, err)
	g, err := mesh.Graph(m)
	require.NoError(t, err)
	vcode, err := mesh.Rotation(m)
	require.NoError(t, err)
	code, err := embed.EdgeCode(vcode, g)
	require.NoError(t, err)

	return code
}

// requireWalk checks that the vertex sequence replays the edge sequence and
// that every edge appears exactly once.
func requireWalk(t *testing.T, g *rotation.Graph, tr search.Trail) {
	t.Helper()
	require.Len(t, tr.Edges, g.EdgeCount())
	require.Len(t, tr.Vertices, g.EdgeCount()+1)
	seen := make(map[int]bool, len(tr.Edges))
	for i, e := range tr.Edges {
		require.False(t, seen[e], "edge %d repeated", e)
		seen[e] = true
		a, b := g.Endpoints(e)
		from, to := tr.Vertices[i], tr.Vertices[i+1]
		require.True(t, (a == from && b == to) || (a == to && b == from),
			"edge %d (%d-%d) between %d and %d", e, a, b, from, to)
	}
	require.Equal(t, tr.Vertices[0], tr.Vertices[len(tr.Vertices)-1])
}

func TestSearch_Square(t *testing.T) {
	res, err := search.SearchEdgeCode(square)
	require.NoError(t, err)
	require.Equal(t, search.Found, res.State)
	require.Equal(t, []int{0, 1, 2, 3}, res.Trail.Edges)
	require.Equal(t, []int{0, 1, 2, 3, 0}, res.Trail.Vertices)
	require.Len(t, res.Stats.Order, 4)
	require.Equal(t, 4, res.Stats.Nodes)
}

func TestSearch_DegreeTwo(t *testing.T) {
	tests := []struct {
		name  string
		code  [][]int
		found bool
	}{
		{"square", square, true},
		{"single loop", [][]int{{0, 0}}, true},
		{"two loops", [][]int{{0, 0}, {1, 1}}, false},
		{"two triangles", twoTriangles, false},
		{"digon", [][]int{{0, 1}, {0, 1}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGraph(t, tc.code)
			res, err := search.Search(g)
			if !tc.found {
				require.ErrorIs(t, err, search.ErrNoTrail)
				require.Equal(t, search.Failed, res.State)
				return
			}
			require.NoError(t, err)
			requireWalk(t, g, res.Trail)
		})
	}
}

func TestSearch_BridgedTrianglesAlwaysHaveATrail(t *testing.T) {
	// Triangles 0-1-2 and 3-4-5 joined by parallel edges 6 and 7 between 2
	// and 3. Whatever the rotation at the bridge ends, one non-crossing
	// matching there sends each triangle into the bridge, so every embedding
	// has an A-trail. Failed needs a graph that falls apart, as in
	// TestSearch_DegreeTwo.
	left := map[string][]int{"bridge together": {1, 2, 6, 7}, "bridge split": {1, 6, 2, 7}}
	right := map[string][]int{"bridge together": {7, 6, 3, 5}, "bridge split": {6, 3, 7, 5}}
	for ln, at2 := range left {
		for rn, at3 := range right {
			t.Run(ln+"/"+rn, func(t *testing.T) {
				code := [][]int{{0, 2}, {0, 1}, at2, at3, {3, 4}, {4, 5}}
				g := mustGraph(t, code)
				res, err := search.Search(g)
				require.NoError(t, err)
				require.Equal(t, search.Found, res.State)
				requireWalk(t, g, res.Trail)
				require.NoError(t, search.Verify(g, res.Trail))
			})
		}
	}
}

// loopChain returns one vertex carrying k self-loops chained around its
// rotation: 0 1 1 2 2 ... k-1 k-1 0.
func loopChain(k int) [][]int {
	rot := []int{0}
	for e := 1; e < k; e++ {
		rot = append(rot, e, e)
	}

	return [][]int{append(rot, 0)}
}

func TestSearch_ManySelfLoopsVerified(t *testing.T) {
	for _, k := range []int{1, 3, 16, 17, 40} {
		g := mustGraph(t, loopChain(k))
		res, err := search.Search(g, search.WithVerify(true))
		require.NoError(t, err, "k=%d", k)
		require.Equal(t, search.Found, res.State, "k=%d", k)
		requireWalk(t, g, res.Trail)
	}
}

func TestVerifyPartners(t *testing.T) {
	// Square ends: v0 {0,6} v1 {1,2} v2 {3,4} v3 {5,7}.
	g := mustGraph(t, square)
	require.NoError(t, search.VerifyPartners(g, []int{6, 2, 1, 4, 3, 7, 0, 5}))

	tests := []struct {
		name    string
		code    [][]int
		partner []int
	}{
		{"asymmetric", square, []int{2, 2, 1, 4, 3, 7, 0, 5}},
		{"other vertex", square, []int{1, 0, 3, 2, 5, 4, 7, 6}},
		{"free end", square, []int{6, 2, 1, 4, 3, -1, 0, 5}},
		{"short", square, []int{6, 2, 1, 4}},
		// bundle: v1 pairs slots (4,6) and (5,7).
		{"crossing", bundle, []int{2, 5, 0, 7, 6, 1, 4, 3}},
		{"two cycles", twoTriangles, []int{4, 2, 1, 5, 0, 3, 10, 8, 7, 11, 6, 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, search.VerifyPartners(mustGraph(t, tc.code), tc.partner), search.ErrNotATrail)
		})
	}
}

func TestSearch_PrunesPrematureCycles(t *testing.T) {
	// Two loops side by side: pairing each loop with itself closes it early.
	res, err := search.SearchEdgeCode([][]int{{0, 0, 1, 1}})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, res.Trail.Edges)
	require.Equal(t, 2, res.Stats.Nodes)
	require.Equal(t, 1, res.Stats.Pruned)
}

func TestSearch_InvalidInput(t *testing.T) {
	_, err := search.SearchEdgeCode([][]int{{0, 1, 2}, {0, 1, 2}})
	require.ErrorIs(t, err, search.ErrInvalidInput)
	require.ErrorIs(t, err, rotation.ErrOddDegree)

	res, err := search.Search(nil)
	require.Nil(t, res)
	require.ErrorIs(t, err, search.ErrInvalidInput)
	require.ErrorIs(t, err, search.ErrNilGraph)
}

func TestSearch_OptionViolation(t *testing.T) {
	g := mustGraph(t, square)
	for _, opt := range []search.Option{
		search.WithMaxNodes(-1),
		search.WithTimeLimit(-1),
		search.WithOrder(search.Order(9)),
	} {
		res, err := search.Search(g, opt)
		require.Nil(t, res)
		require.ErrorIs(t, err, search.ErrOptionViolation)
	}
}

func TestSearch_Octahedron(t *testing.T) {
	g := mustGraph(t, octahedron(t))
	res, err := search.Search(g)
	require.NoError(t, err)
	require.Equal(t, search.Found, res.State)
	requireWalk(t, g, res.Trail)
	require.NoError(t, search.Verify(g, res.Trail))
}

func TestSearch_Idempotent(t *testing.T) {
	g := mustGraph(t, tetraCode)
	first, err := search.Search(g)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := search.Search(g)
		require.NoError(t, err)
		require.Equal(t, first.Trail, again.Trail)
		require.Equal(t, first.Stats.Nodes, again.Stats.Nodes)
	}
}

func TestSearch_EveryOrderSameVerdict(t *testing.T) {
	codes := map[string][][]int{
		"square":        square,
		"two triangles": twoTriangles,
		"tetrahedron":   tetraCode,
		"octahedron":    octahedron(t),
		"bundle":        bundle,
	}
	orders := []search.Order{search.OrderConnected, search.OrderDegree, search.OrderInput}
	for name, code := range codes {
		t.Run(name, func(t *testing.T) {
			g := mustGraph(t, code)
			var states []search.State
			for _, ord := range orders {
				res, err := search.Search(g, search.WithOrder(ord))
				if err != nil {
					require.ErrorIs(t, err, search.ErrNoTrail)
				} else {
					requireWalk(t, g, res.Trail)
				}
				require.Len(t, res.Stats.Order, g.VertexCount())
				states = append(states, res.State)
			}
			for _, s := range states[1:] {
				assert.Equal(t, states[0], s)
			}
		})
	}
}

func TestSearch_NodeBudget(t *testing.T) {
	g := mustGraph(t, tetraCode)
	res, err := search.Search(g, search.WithMaxNodes(1))
	require.ErrorIs(t, err, search.ErrAborted)
	require.ErrorIs(t, err, search.ErrNodeLimit)
	require.NotNil(t, res)
	require.Equal(t, search.Aborted, res.State)
	require.Equal(t, 1, res.Stats.Nodes)

	// The graph is untouched; a full search still succeeds.
	_, err = search.Search(g)
	require.NoError(t, err)
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := search.Search(mustGraph(t, octahedron(t)), search.WithContext(ctx))
	require.ErrorIs(t, err, search.ErrAborted)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, search.Aborted, res.State)
	require.Zero(t, res.Stats.Nodes)
}

func TestSearch_OnCommit(t *testing.T) {
	var commits []int
	_, err := search.SearchEdgeCode(square, search.WithOnCommit(func(v, k int) {
		require.Zero(t, k) // degree 2 has a single candidate
		commits = append(commits, v)
	}))
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2, 3}, commits)
}

func TestVerify_RejectsTamperedTrails(t *testing.T) {
	g := mustGraph(t, square)
	good := search.Trail{Edges: []int{0, 1, 2, 3}, Vertices: []int{0, 1, 2, 3, 0}}
	require.NoError(t, search.Verify(g, good))

	tests := []struct {
		name string
		tr   search.Trail
	}{
		{"short", search.Trail{Edges: []int{0, 1, 2}, Vertices: []int{0, 1, 2, 3}}},
		{"open", search.Trail{Edges: []int{0, 1, 2, 3}, Vertices: []int{0, 1, 2, 3, 1}}},
		{"repeated edge", search.Trail{Edges: []int{0, 1, 1, 3}, Vertices: []int{0, 1, 2, 3, 0}}},
		{"wrong endpoints", search.Trail{Edges: []int{0, 2, 1, 3}, Vertices: []int{0, 1, 2, 3, 0}}},
		{"edge out of range", search.Trail{Edges: []int{0, 1, 2, 9}, Vertices: []int{0, 1, 2, 3, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, search.Verify(g, tc.tr), search.ErrNotATrail)
		})
	}
}

func TestVerify_RejectsCrossingTransitions(t *testing.T) {
	g := mustGraph(t, bundle)
	ok := search.Trail{Edges: []int{0, 1, 2, 3}, Vertices: []int{0, 1, 0, 1, 0}}
	require.NoError(t, search.Verify(g, ok))

	// At vertex 1 this pairs slots (3,1) and (2,0), which cross.
	crossing := search.Trail{Edges: []int{0, 2, 1, 3}, Vertices: []int{0, 1, 0, 1, 0}}
	require.ErrorIs(t, search.Verify(g, crossing), search.ErrNotATrail)
}

func TestExtract_Errors(t *testing.T) {
	g := mustGraph(t, twoTriangles)
	// Each triangle closed on itself: the walk from end 0 stops early.
	partner := []int{4, 2, 1, 5, 0, 3, 10, 8, 7, 11, 6, 9}
	_, err := search.Extract(g, partner)
	require.ErrorIs(t, err, search.ErrNotATrail)

	_, err = search.Extract(g, partner[:4])
	require.ErrorIs(t, err, search.ErrNotATrail)
}
