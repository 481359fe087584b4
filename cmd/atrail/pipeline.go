package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/atrail/embed"
	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/graph"
	"github.com/katalvlaran/atrail/internal/cache"
	"github.com/katalvlaran/atrail/mesh"
	"github.com/katalvlaran/atrail/ply"
	"github.com/katalvlaran/atrail/postman"
	"github.com/katalvlaran/atrail/rotation"
)

// stages holds every intermediate product of the mesh pipeline.
type stages struct {
	simple *graph.Graph
	vcode  [][]int
	euler  *graph.Graph
	code   [][]int
	rot    *rotation.Graph
}

// runStages takes a mesh through graph extraction, rotation, Eulerization
// and edge code construction.
func runStages(m *ply.Mesh) (*stages, error) {
	var (
		s   stages
		err error
	)
	if s.simple, err = mesh.Graph(m); err != nil {
		return nil, err
	}
	if s.vcode, err = mesh.Rotation(m); err != nil {
		return nil, err
	}
	if s.euler, err = postman.Eulerize(s.simple); err != nil {
		return nil, err
	}
	if s.code, err = embed.EdgeCode(s.vcode, s.euler); err != nil {
		return nil, err
	}
	if s.rot, err = rotation.New(s.code); err != nil {
		return nil, err
	}

	return &s, nil
}

func newPipelineCmd() *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "pipeline input.ply",
		Short: "Run every stage from a PLY mesh to an A-trail",
		Long: `Runs ply2dimacs, ply2vcode, postman, eulerize-embedding and search in
one go. Every intermediate file is written next to the input:
<input>.dimacs, .vcode, .euler.dimacs, .ecode, .trail and .ntrail.`,
		Args: argsRange(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd); err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}
			return runPipeline(cmd.Context(), store, args[0])
		},
	}
	flags.register(cmd)

	return cmd
}

func runPipeline(ctx context.Context, store *cache.Store, in string) error {
	m, err := readMesh(in)
	if err != nil {
		return err
	}
	s, err := runStages(m)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	// 1) Intermediate files.
	if err = writeDIMACS(format.OutputName(in, format.ExtDIMACS), s.simple, "converted from "+in); err != nil {
		return err
	}
	if err = writeVCode(format.OutputName(in, format.ExtVCode), s.vcode); err != nil {
		return err
	}
	if err = writeDIMACS(format.OutputName(in, extEulerian), s.euler, "Eulerian multigraph of "+in); err != nil {
		return err
	}
	if err = writeEdgeCode(format.OutputName(in, format.ExtECode), s.code); err != nil {
		return err
	}
	logger.Info("wrote intermediate files", zap.String("file", in),
		zap.Int("vertices", s.rot.VertexCount()), zap.Int("edges", s.rot.EdgeCount()),
		zap.Int("added", s.euler.EdgeCount()-s.simple.EdgeCount()))

	// 2) Search.
	res, err := searchGraph(ctx, store, s.rot)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Info("found an A-trail", zap.String("file", in),
		zap.Int("nodes", res.Stats.Nodes), zap.Duration("elapsed", res.Stats.Elapsed))

	return writeTrail(format.OutputName(in, format.ExtTrail), format.OutputName(in, format.ExtNTrail), res.Trail)
}

func newDemoCmd() *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:       "demo [solid]",
		Short:     "Run the pipeline on built-in Platonic solids",
		Long:      `Runs every stage in memory on one Platonic solid, or on all five, and prints the trails.`,
		Args:      argsRange(0, 1),
		ValidArgs: solidNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd); err != nil {
				return err
			}
			solids := mesh.PlatonicNames()
			if len(args) == 1 {
				p, err := mesh.ParsePlatonic(args[0])
				if err != nil {
					return usageError(fmt.Errorf("%q: %w", args[0], err))
				}
				solids = []mesh.PlatonicName{p}
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}
			return runDemo(cmd.Context(), store, cmd.OutOrStdout(), solids)
		},
	}
	flags.register(cmd)

	return cmd
}

func solidNames() []string {
	var out []string
	for _, p := range mesh.PlatonicNames() {
		out = append(out, p.String())
	}

	return out
}

// runDemo prints one line per solid: its size and trail, or the verdict.
func runDemo(ctx context.Context, store *cache.Store, w io.Writer, solids []mesh.PlatonicName) error {
	errs := make([]error, 0, len(solids))
	for _, p := range solids {
		m, err := mesh.Platonic(p)
		if err != nil {
			return err
		}
		s, err := runStages(m)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		res, err := searchGraph(ctx, store, s.rot)
		errs = append(errs, err)
		if err != nil {
			fmt.Fprintf(w, "%-12s V=%-2d E=%-2d %v\n", p, s.rot.VertexCount(), s.rot.EdgeCount(), err)
			continue
		}
		fmt.Fprintf(w, "%-12s V=%-2d E=%-2d trail %v\n", p, s.rot.VertexCount(), s.rot.EdgeCount(), res.Trail.Vertices)
		logger.Debug("demo search", zap.Stringer("solid", p), zap.Int("nodes", res.Stats.Nodes))
	}

	return worst(errs)
}
