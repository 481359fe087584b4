// Command atrail runs the A-trail tool chain: PLY meshes to graphs and
// rotations, Eulerization, edge codes, and the A-trail search itself.
//
//	atrail ply2dimacs mesh.ply [mesh.dimacs]
//	atrail ply2vcode mesh.ply [mesh.vcode]
//	atrail postman mesh.dimacs [mesh.euler.dimacs] [--tour walk.ntrail]
//	atrail eulerize-embedding mesh.vcode mesh.euler.dimacs [mesh.ecode]
//	atrail search mesh.ecode [more.ecode ...] [--jobs N]
//	atrail verify mesh.ecode mesh.trail [mesh.ntrail]
//	atrail pipeline mesh.ply
//	atrail demo [tetrahedron|cube|octahedron|dodecahedron|icosahedron]
//
// Exit codes: 0 success, 1 no A-trail, 2 I/O failure, 3 invalid input,
// 4 search aborted, 5 usage or configuration error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/atrail/internal/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
	dev        bool

	// Loaded in PersistentPreRunE.
	cfg    = config.Default()
	logger = zap.NewNop()
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atrail",
		Short: "Search A-trails of planar Eulerian embeddings",
		Long: `atrail converts triangle and polygon meshes into Eulerian plane
multigraphs and searches them for an A-trail: a closed trail through every
edge whose turn at each vertex never crosses another turn there.

Each stage reads and writes plain text files, so stages can be run one by
one or all at once with "pipeline".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&dev, "dev", false, "Human-readable console logs")

	root.AddCommand(
		newPly2DIMACSCmd(),
		newPly2VCodeCmd(),
		newPostmanCmd(),
		newEulerizeEmbeddingCmd(),
		newSearchCmd(),
		newVerifyCmd(),
		newPipelineCmd(),
		newDemoCmd(),
	)

	return root
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return usageError(err)
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if dev {
		c.Log.Development = true
	}
	cfg = c

	l, err := newLogger(cfg)
	if err != nil {
		return usageError(fmt.Errorf("failed to initialize logger: %w", err))
	}
	logger = l

	return nil
}

// newLogger returns a JSON production logger, or a console logger in
// development mode.
func newLogger(c config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func main() {
	err := newRootCmd().Execute()
	code := exitCode(err)
	switch {
	case code == exitNoTrail:
		fmt.Fprintln(os.Stdout, "No A-trail found:", err)
	case err != nil:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(code)
}
