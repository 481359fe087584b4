package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/internal/cache"
	"github.com/katalvlaran/atrail/mesh"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

func TestMain(m *testing.M) {
	// opencensus (pulled in by badger) starts a process-wide worker in init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreTopFunction("github.com/golang/glog.(*fileSink).flushDaemon"))
}

const tetraPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 4
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 1 2 3
3 2 0 3
`

// execute runs the command tree with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", ""}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()

	return out.String(), err
}

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(b)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{search.ErrNoTrail, exitNoTrail},
		{ioError(os.ErrNotExist), exitIO},
		{rotation.ErrInvalidInput, exitInvalidInput},
		{format.ErrSyntax, exitInvalidInput},
		{mesh.ErrNonManifold, exitInvalidInput},
		{search.ErrAborted, exitAborted},
		{usageError(errors.New("bad flag")), exitUsage},
		{errors.New(`unknown command "x" for "atrail"`), exitUsage},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, exitCode(tc.err), "%v", tc.err)
	}
}

func TestWorst(t *testing.T) {
	noTrail := search.ErrNoTrail
	bad := rotation.ErrInvalidInput
	require.Nil(t, worst([]error{nil, nil}))
	require.Equal(t, noTrail, worst([]error{nil, noTrail}))
	require.Equal(t, bad, worst([]error{noTrail, bad, search.ErrAborted}))
}

func TestSearch_Square(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "square.ecode", "c the 4-cycle\n0 3\n0 1\n1 2\n2 3\n")

	_, err := execute(t, "search", in)
	require.NoError(t, err)
	require.Equal(t, "0 1 2 3 \n", readFile(t, filepath.Join(dir, "square.trail")))
	require.Equal(t, "0 1 2 3 0 \n", readFile(t, filepath.Join(dir, "square.ntrail")))

	_, err = execute(t, "verify", in, filepath.Join(dir, "square.trail"))
	require.NoError(t, err)
}

func TestSearch_ExplicitOutputs(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "square.ecode", "0 3\n0 1\n1 2\n2 3\n")
	edges, nodes := filepath.Join(dir, "e.txt"), filepath.Join(dir, "v.txt")

	_, err := execute(t, "search", in, "--trail", edges, "--ntrail", nodes)
	require.NoError(t, err)
	require.FileExists(t, edges)
	require.FileExists(t, nodes)
	require.NoFileExists(t, filepath.Join(dir, "square.trail"))
}

func TestSearch_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	triangles := writeTemp(t, dir, "triangles.ecode", "0 2\n0 1\n1 2\n3 5\n3 4\n4 5\n")
	odd := writeTemp(t, dir, "odd.ecode", "0 1 2\n0 1 2\n")
	gap := writeTemp(t, dir, "gap.ecode", "0 1\n\n0 1\n")
	tetra := writeTemp(t, dir, "tetra.ecode", "6 2 0 4\n1 2 6 3\n0 1 7 5\n3 4 5 7\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no trail", []string{"search", triangles}, exitNoTrail},
		{"odd degree", []string{"search", odd}, exitInvalidInput},
		{"blank rotation", []string{"search", gap}, exitInvalidInput},
		{"missing file", []string{"search", filepath.Join(dir, "nope.ecode")}, exitIO},
		{"node budget", []string{"search", tetra, "--max-nodes", "1"}, exitAborted},
		{"no args", []string{"search"}, exitUsage},
		{"bad order", []string{"search", tetra, "--order", "random"}, exitUsage},
		{"unknown flag", []string{"search", tetra, "--frobnicate"}, exitUsage},
		{"outputs with batch", []string{"search", tetra, triangles, "--trail", "x"}, exitUsage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			require.Equal(t, tc.want, exitCode(err), "%v", err)
		})
	}
}

func TestSearch_Batch(t *testing.T) {
	dir := t.TempDir()
	square := writeTemp(t, dir, "square.ecode", "0 3\n0 1\n1 2\n2 3\n")
	tetra := writeTemp(t, dir, "tetra.ecode", "6 2 0 4\n1 2 6 3\n0 1 7 5\n3 4 5 7\n")
	triangles := writeTemp(t, dir, "triangles.ecode", "0 2\n0 1\n1 2\n3 5\n3 4\n4 5\n")

	_, err := execute(t, "search", "--jobs", "2", square, tetra, triangles)
	require.ErrorIs(t, err, search.ErrNoTrail)
	require.FileExists(t, filepath.Join(dir, "square.trail"))
	require.FileExists(t, filepath.Join(dir, "tetra.ntrail"))
	require.NoFileExists(t, filepath.Join(dir, "triangles.trail"))
}

func TestSearch_Cache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	tetra := writeTemp(t, dir, "tetra.ecode", "6 2 0 4\n1 2 6 3\n0 1 7 5\n3 4 5 7\n")

	_, err := execute(t, "search", tetra, "--cache-dir", cacheDir)
	require.NoError(t, err)
	first := readFile(t, filepath.Join(dir, "tetra.trail"))
	require.NoError(t, os.Remove(filepath.Join(dir, "tetra.trail")))

	// The second run is answered from the cache, even with no node budget left.
	_, err = execute(t, "search", tetra, "--cache-dir", cacheDir, "--max-nodes", "1")
	require.NoError(t, err)
	require.Equal(t, first, readFile(t, filepath.Join(dir, "tetra.trail")))
}

func TestSearch_CacheEntryThatDoesNotVerify(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	body := "6 2 0 4\n1 2 6 3\n0 1 7 5\n3 4 5 7\n"
	tetra := writeTemp(t, dir, "tetra.ecode", body)

	code, err := format.ReadEdgeCode(strings.NewReader(body))
	require.NoError(t, err)
	g, err := rotation.New(code)
	require.NoError(t, err)
	store, err := cache.Open(cacheDir)
	require.NoError(t, err)
	bogus := cache.Entry{Found: true, Edges: []int{0, 0, 0, 0}, Vertices: []int{0, 1, 0, 1, 0}}
	require.NoError(t, store.Put(cache.Key(g), bogus))
	require.NoError(t, store.Close())

	// The stored trail is rejected and the search runs again.
	_, err = execute(t, "search", tetra, "--cache-dir", cacheDir)
	require.NoError(t, err)
	_, err = execute(t, "verify", tetra, filepath.Join(dir, "tetra.trail"))
	require.NoError(t, err)

	// The fresh verdict replaced the bad entry.
	store, err = cache.Open(cacheDir)
	require.NoError(t, err)
	defer store.Close()
	e, ok, err := store.Get(cache.Key(g))
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, search.Verify(g, search.Trail{Edges: e.Edges, Vertices: e.Vertices}))
}

func TestStagesMatchPipeline(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "tetra.ply", tetraPLY)

	_, err := execute(t, "pipeline", in)
	require.NoError(t, err)
	pipelineCode := readFile(t, filepath.Join(dir, "tetra.ecode"))
	require.Equal(t, "6 2 0 4 \n1 2 6 3 \n0 1 7 5 \n3 4 5 7 \n", pipelineCode)
	_, err = execute(t, "verify", filepath.Join(dir, "tetra.ecode"), filepath.Join(dir, "tetra.trail"))
	require.NoError(t, err)

	// Same result one stage at a time, into a second directory.
	step := t.TempDir()
	dimacs := filepath.Join(step, "g.dimacs")
	vcode := filepath.Join(step, "g.vcode")
	euler := filepath.Join(step, "g.euler.dimacs")
	ecode := filepath.Join(step, "g.ecode")
	tour := filepath.Join(step, "g.tour")
	for _, args := range [][]string{
		{"ply2dimacs", in, dimacs},
		{"ply2vcode", in, vcode},
		{"postman", dimacs, euler, "--tour", tour},
		{"eulerize-embedding", vcode, euler, ecode},
	} {
		_, err = execute(t, args...)
		require.NoError(t, err, "%v", args)
	}
	require.Equal(t, pipelineCode, readFile(t, ecode))
	require.Equal(t, readFile(t, filepath.Join(dir, "tetra.vcode")), readFile(t, vcode))

	walk := strings.Fields(readFile(t, tour))
	require.Len(t, walk, 9) // 8 edges, closed
	require.Equal(t, walk[0], walk[8])
}

func TestPostman_Disconnected(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "two.dimacs", "p edge 4 2\ne 1 2\ne 3 4\n")
	_, err := execute(t, "postman", in)
	require.Equal(t, exitInvalidInput, exitCode(err), "%v", err)
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for i, p := range mesh.PlatonicNames() {
		require.True(t, strings.HasPrefix(lines[i], p.String()), lines[i])
		require.Contains(t, lines[i], "trail [")
	}

	out, err = execute(t, "demo", "octahedron")
	require.NoError(t, err)
	require.Contains(t, out, "V=6  E=12 trail")

	_, err = execute(t, "demo", "torus")
	require.Equal(t, exitUsage, exitCode(err))
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeTemp(t, dir, "bad.yaml", "jobs: 0\n")
	_, err := execute(t, "--config", bad, "demo", "tetrahedron")
	require.Equal(t, exitUsage, exitCode(err))

	_, err = execute(t, "--config", filepath.Join(dir, "missing.yaml"), "demo")
	require.Equal(t, exitUsage, exitCode(err))
}
