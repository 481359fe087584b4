package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify input.ecode input.trail [input.ntrail]",
		Short: "Check that a trail file is an A-trail of an edge code",
		Args:  argsRange(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyFiles(args[0], args[1], outputArg(args, 2, args[1], format.ExtNTrail))
		},
	}
}

func verifyFiles(codePath, edgePath, vertexPath string) error {
	code, err := readEdgeCode(codePath)
	if err != nil {
		return err
	}
	g, err := rotation.New(code)
	if err != nil {
		return err
	}
	edges, err := readTrail(edgePath)
	if err != nil {
		return err
	}
	vertices, err := readTrail(vertexPath)
	if err != nil {
		return err
	}

	if err = search.Verify(g, search.Trail{Edges: edges, Vertices: vertices}); err != nil {
		return err
	}
	logger.Info("trail is an A-trail", zap.String("file", edgePath), zap.Int("edges", len(edges)))

	return nil
}
