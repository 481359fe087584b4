package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atrail/internal/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atrail.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "connected", c.Search.Order)
	require.True(t, c.Search.Verify)
	require.Equal(t, 1, c.Jobs)
	require.Len(t, c.SearchOptions(), 4)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
  development: true
search:
  order: degree
  max_nodes: 1000
  time_limit: 2s
  verify: false
cache:
  dir: /tmp/atrail-cache
jobs: 4
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", c.Log.Level)
	require.True(t, c.Log.Development)
	require.Equal(t, "degree", c.Search.Order)
	require.Equal(t, 1000, c.Search.MaxNodes)
	require.Equal(t, 2*time.Second, c.Search.TimeLimit)
	require.False(t, c.Search.Verify)
	require.Equal(t, "/tmp/atrail-cache", c.Cache.Dir)
	require.Equal(t, 4, c.Jobs)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	c, err := config.Load(writeFile(t, "jobs: 2\n"))
	require.NoError(t, err)
	require.Equal(t, 2, c.Jobs)
	require.True(t, c.Search.Verify)
	require.Equal(t, "info", c.Log.Level)

	c, err = config.Load(writeFile(t, "# nothing here\n"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ATRAIL_LOG_LEVEL", "warn")
	t.Setenv("ATRAIL_JOBS", "3")
	t.Setenv("ATRAIL_CACHE_DIR", "/var/cache/atrail")
	t.Setenv("ATRAIL_MAX_NODES", "50")

	c, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "warn", c.Log.Level)
	require.Equal(t, 3, c.Jobs)
	require.Equal(t, "/var/cache/atrail", c.Cache.Dir)
	require.Equal(t, 50, c.Search.MaxNodes)

	t.Setenv("ATRAIL_JOBS", "many")
	_, err = config.Load("")
	require.ErrorIs(t, err, config.ErrBadJobs)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"order", "search:\n  order: random\n", config.ErrBadOrder},
		{"jobs", "jobs: 0\n", config.ErrBadJobs},
		{"level", "log:\n  level: loud\n", config.ErrBadLevel},
		{"nodes", "search:\n  max_nodes: -1\n", config.ErrNegativeBudget},
		{"time", "search:\n  time_limit: -1s\n", config.ErrNegativeBudget},
		{"unknown key", "serach:\n  order: input\n", config.ErrBadFile},
		{"syntax", "jobs: [\n", config.ErrBadFile},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tc.body))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrBadFile)
}
