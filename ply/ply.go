// Package ply reads the face structure of ASCII PLY meshes.
//
// Only what the graph pipeline needs is kept: the vertex count and the face
// index lists. Vertex properties (coordinates, colours) are skipped line by
// line, so any vertex property layout is accepted.
//
// Accepted layout:
//
//	ply
//	format ascii 1.0
//	comment ...            (anywhere in the header)
//	element vertex N
//	property ...
//	element face F
//	property list ...
//	end_header
//	N vertex lines
//	F face lines "k i0 i1 ... ik-1"
package ply

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotPLY indicates a file that does not start with the "ply" magic line.
	ErrNotPLY = errors.New("ply: not a PLY file")

	// ErrNotASCII indicates a binary PLY encoding.
	ErrNotASCII = errors.New("ply: only ascii format is supported")

	// ErrMissingElement indicates a header without "element vertex" or
	// "element face", or without "end_header".
	ErrMissingElement = errors.New("ply: missing header element")

	// ErrBadFace indicates a face with fewer than 3 corners, a corner count
	// that disagrees with the line, or a vertex index out of range.
	ErrBadFace = errors.New("ply: malformed face")

	// ErrTruncated indicates fewer vertex or face lines than declared.
	ErrTruncated = errors.New("ply: truncated body")
)

// Mesh is the combinatorial part of a polygon mesh. Faces list vertex
// indices in boundary order; consistently oriented meshes list every face the
// same way round.
type Mesh struct {
	Vertices int
	Faces    [][]int
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return m, nil
}

// Read parses an ASCII PLY stream.
func Read(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return strings.TrimSpace(sc.Text()), true
	}

	// 1) Header.
	if s, ok := next(); !ok || s != "ply" {
		return nil, ErrNotPLY
	}
	vertices, faces := -1, -1
	ended := false
	for !ended {
		s, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, errors.Wrapf(ErrNotASCII, "line %d", line)
			}
		case "element":
			if len(fields) != 3 {
				return nil, errors.Wrapf(ErrMissingElement, "line %d: %q", line, s)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, errors.Wrapf(ErrMissingElement, "line %d: bad count %q", line, fields[2])
			}
			switch fields[1] {
			case "vertex":
				vertices = n
			case "face":
				faces = n
			}
		case "end_header":
			ended = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if !ended || vertices < 0 || faces < 0 {
		return nil, ErrMissingElement
	}

	// 2) Vertex lines carry geometry only.
	for i := 0; i < vertices; i++ {
		if _, ok := next(); !ok {
			return nil, errors.Wrapf(ErrTruncated, "vertex %d of %d", i, vertices)
		}
	}

	// 3) Faces.
	m := &Mesh{Vertices: vertices, Faces: make([][]int, 0, faces)}
	for i := 0; i < faces; i++ {
		s, ok := next()
		if !ok {
			return nil, errors.Wrapf(ErrTruncated, "face %d of %d", i, faces)
		}
		face, err := parseFace(s, vertices)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		m.Faces = append(m.Faces, face)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	return m, nil
}

// parseFace parses "k i0 ... ik-1". Trailing per-face properties after the
// index list are ignored.
func parseFace(s string, vertices int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrBadFace
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil || k < 3 || len(fields) < k+1 {
		return nil, errors.Wrapf(ErrBadFace, "%q", s)
	}
	face := make([]int, k)
	for j := range face {
		v, err := strconv.Atoi(fields[j+1])
		if err != nil || v < 0 || v >= vertices {
			return nil, errors.Wrapf(ErrBadFace, "corner %d of %q", j, s)
		}
		face[j] = v
	}

	return face, nil
}
