package main

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/atrail/embed"
	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/graph"
	"github.com/katalvlaran/atrail/mesh"
	"github.com/katalvlaran/atrail/ply"
	"github.com/katalvlaran/atrail/postman"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

// Process exit codes.
const (
	exitOK = iota
	exitNoTrail
	exitIO
	exitInvalidInput
	exitAborted
	exitUsage
)

var (
	errIO    = errors.New("i/o failure")
	errUsage = errors.New("usage")
)

// invalidInput lists the sentinels that mean a malformed or unsuitable input.
var invalidInput = []error{
	rotation.ErrInvalidInput,
	format.ErrSyntax, format.ErrHeader, format.ErrCountMismatch, format.ErrVertexRange,
	graph.ErrVertexRange,
	ply.ErrNotPLY, ply.ErrNotASCII, ply.ErrMissingElement, ply.ErrBadFace, ply.ErrTruncated,
	mesh.ErrNonManifold, mesh.ErrUnusedVertex, mesh.ErrUnknownSolid,
	postman.ErrDisconnected, postman.ErrNotEulerian,
	embed.ErrVertexCount, embed.ErrSelfLoop, embed.ErrMissingNeighbor, embed.ErrUnassigned,
	search.ErrNotATrail,
}

func ioError(err error) error    { return fmt.Errorf("%w: %w", errIO, err) }
func usageError(err error) error { return fmt.Errorf("%w: %w", errUsage, err) }

// exitCode maps an error returned by a command to the process exit code.
// Errors of unknown origin come from cobra's argument handling.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, errIO):
		return exitIO
	case errors.Is(err, search.ErrNoTrail):
		return exitNoTrail
	case errors.Is(err, search.ErrAborted):
		return exitAborted
	}
	for _, s := range invalidInput {
		if errors.Is(err, s) {
			return exitInvalidInput
		}
	}

	return exitUsage
}
