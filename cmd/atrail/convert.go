package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/mesh"
)

// argsRange is cobra.RangeArgs with the error marked as a usage error.
func argsRange(lo, hi int) cobra.PositionalArgs {
	check := cobra.RangeArgs(lo, hi)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func newPly2DIMACSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ply2dimacs input.ply [output.dimacs]",
		Short: "Convert a PLY mesh to its simple edge graph",
		Long: `Reads the faces of an ASCII PLY mesh and writes one dimacs edge per
pair of adjacent vertices. A disconnected mesh is converted but reported.`,
		Args: argsRange(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ply2DIMACS(args[0], outputArg(args, 1, args[0], format.ExtDIMACS))
		},
	}
}

func ply2DIMACS(in, out string) error {
	m, err := readMesh(in)
	if err != nil {
		return err
	}
	logger.Info("read PLY", zap.String("file", in), zap.Int("vertices", m.Vertices), zap.Int("faces", len(m.Faces)))

	g, err := mesh.Graph(m)
	if err != nil {
		return err
	}
	if count, _ := g.Components(); count != 1 {
		logger.Warn("the graph in the PLY is not connected", zap.String("file", in), zap.Int("components", count))
	}
	if err = writeDIMACS(out, g, "converted from "+in); err != nil {
		return err
	}
	logger.Info("wrote dimacs", zap.String("file", out), zap.Int("edges", g.EdgeCount()))

	return nil
}

func newPly2VCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ply2vcode input.ply [output.vcode]",
		Short: "Read the vertex rotation a PLY mesh surface defines",
		Args:  argsRange(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ply2VCode(args[0], outputArg(args, 1, args[0], format.ExtVCode))
		},
	}
}

func ply2VCode(in, out string) error {
	m, err := readMesh(in)
	if err != nil {
		return err
	}
	vcode, err := mesh.Rotation(m)
	if err != nil {
		return err
	}
	if err = writeVCode(out, vcode); err != nil {
		return err
	}
	logger.Info("wrote vcode", zap.String("file", out), zap.Int("vertices", len(vcode)))

	return nil
}
