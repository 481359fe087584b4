package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/atrail/embed"
	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/postman"
)

func newPostmanCmd() *cobra.Command {
	var tour string
	cmd := &cobra.Command{
		Use:   "postman input.dimacs [output.dimacs]",
		Short: "Make a connected graph Eulerian by duplicating shortest paths",
		Long: `Pairs the odd-degree vertices by a minimum-weight perfect matching on
shortest-path distances and duplicates the edges of each pair's path. The
result is an Eulerian multigraph. Disconnected graphs are rejected.`,
		Args: argsRange(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostman(args[0], outputArg(args, 1, args[0], extEulerian), tour)
		},
	}
	cmd.Flags().StringVar(&tour, "tour", "", "Also write an Eulerian circuit (vertex sequence) to this file")

	return cmd
}

func runPostman(in, out, tour string) error {
	g, err := readDIMACS(in)
	if err != nil {
		return err
	}
	logger.Info("read graph", zap.String("file", in), zap.Int("vertices", g.VertexCount()), zap.Int("edges", g.EdgeCount()))

	odd := len(g.OddVertices())
	e, err := postman.Eulerize(g)
	if err != nil {
		return err
	}
	if odd == 0 {
		logger.Info("there were no odd degree vertices")
	}
	if err = writeDIMACS(out, e, "Eulerian multigraph of "+in); err != nil {
		return err
	}
	logger.Info("wrote Eulerian multigraph", zap.String("file", out),
		zap.Int("odd", odd), zap.Int("added", e.EdgeCount()-g.EdgeCount()))

	if tour == "" {
		return nil
	}
	walk, err := postman.Circuit(e, 0)
	if err != nil {
		return err
	}
	if err = writeSeq(tour, walk); err != nil {
		return err
	}
	logger.Info("wrote Eulerian circuit", zap.String("file", tour), zap.Int("length", len(walk)-1))

	return nil
}

func newEulerizeEmbeddingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eulerize-embedding input.vcode input.dimacs [output.ecode]",
		Short: "Build the edge code of an Eulerian multigraph from a vertex rotation",
		Long: `Reads the vertex rotation of a simple graph and an Eulerian multigraph
built on it (see "postman"), and writes the edge code: parallel copies are
placed next to the edge they duplicate in both endpoint rotations.`,
		Args: argsRange(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eulerizeEmbedding(args[0], args[1], outputArg(args, 2, args[0], format.ExtECode))
		},
	}
}

func eulerizeEmbedding(vcodePath, dimacsPath, out string) error {
	vcode, err := readVCode(vcodePath)
	if err != nil {
		return err
	}
	logger.Info("read vcode", zap.String("file", vcodePath), zap.Int("vertices", len(vcode)))
	g, err := readDIMACS(dimacsPath)
	if err != nil {
		return err
	}
	logger.Info("read multigraph", zap.String("file", dimacsPath), zap.Int("edges", g.EdgeCount()))

	code, err := embed.EdgeCode(vcode, g)
	if err != nil {
		return err
	}
	if err = writeEdgeCode(out, code); err != nil {
		return err
	}
	logger.Info("wrote edge code", zap.String("file", out))

	return nil
}
