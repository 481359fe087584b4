package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/graph"
	"github.com/katalvlaran/atrail/ply"
	"github.com/katalvlaran/atrail/search"
)

// extEulerian names the Eulerized dimacs file the pipeline writes next to
// the simple one.
const extEulerian = ".euler" + format.ExtDIMACS

// readWith opens path and decodes it with read. Open failures are I/O errors;
// decode failures keep their own class.
func readWith[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, ioError(err)
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// writeWith creates path and encodes into it with write. Every failure is an
// I/O error.
func writeWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ioError(err)
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return ioError(fmt.Errorf("%s: %w", path, err))
	}
	if err = f.Close(); err != nil {
		return ioError(err)
	}

	return nil
}

func readMesh(path string) (*ply.Mesh, error) { return readWith(path, ply.Read) }

func readEdgeCode(path string) ([][]int, error) { return readWith(path, format.ReadEdgeCode) }

func readVCode(path string) ([][]int, error) { return readWith(path, format.ReadVCode) }

func readDIMACS(path string) (*graph.Graph, error) { return readWith(path, format.ReadDIMACS) }

func readTrail(path string) ([]int, error) { return readWith(path, format.ReadTrail) }

func writeEdgeCode(path string, code [][]int) error {
	return writeWith(path, func(w io.Writer) error { return format.WriteEdgeCode(w, code) })
}

func writeVCode(path string, vcode [][]int) error {
	return writeWith(path, func(w io.Writer) error { return format.WriteVCode(w, vcode) })
}

func writeDIMACS(path string, g *graph.Graph, comments ...string) error {
	return writeWith(path, func(w io.Writer) error { return format.WriteDIMACS(w, g, comments...) })
}

func writeSeq(path string, seq []int) error {
	return writeWith(path, func(w io.Writer) error { return format.WriteTrail(w, seq) })
}

// writeTrail writes the edge and vertex sequences of t.
func writeTrail(edgePath, vertexPath string, t search.Trail) error {
	if err := writeSeq(edgePath, t.Edges); err != nil {
		return err
	}

	return writeSeq(vertexPath, t.Vertices)
}

// outputArg returns args[i] if present, otherwise the name derived from in.
func outputArg(args []string, i int, in, ext string) string {
	if i < len(args) {
		return args[i]
	}

	return format.OutputName(in, ext)
}
