package format

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSyntax indicates text that does not match the format grammar.
	ErrSyntax = errors.New("format: syntax error")

	// ErrHeader indicates a missing, repeated or misplaced header line.
	ErrHeader = errors.New("format: bad header")

	// ErrCountMismatch indicates header counts that disagree with the body.
	ErrCountMismatch = errors.New("format: count mismatch")

	// ErrVertexRange indicates a vertex index outside the declared range.
	ErrVertexRange = errors.New("format: vertex out of range")
)

// Extensions of the files the pipeline derives from its input.
const (
	ExtDIMACS = ".dimacs"
	ExtVCode  = ".vcode"
	ExtECode  = ".ecode"
	ExtTrail  = ".trail"
	ExtNTrail = ".ntrail"
)

// OutputName replaces the extension of in with ext.
func OutputName(in, ext string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

// ReadEdgeCode parses an edge code: one rotation per line, so line i (comment
// lines aside) is vertex i. An interior blank line is an empty rotation and is
// left for rotation.New to reject; blank lines at the end are dropped.
// Semantic checks (degrees, occurrences) belong to rotation.New.
func ReadEdgeCode(r io.Reader) ([][]int, error) {
	return readLines(r, "edge code")
}

// WriteEdgeCode writes one rotation per line.
func WriteEdgeCode(w io.Writer, code [][]int) error {
	return writeLines(w, nil, code)
}

// ReadVCode parses a vertex code. If the "p N" header is present it must be
// the first record and N must equal the number of rotation lines; every
// neighbour must lie in 0..n-1.
func ReadVCode(r io.Reader) ([][]int, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read vcode")
	}
	ast, err := parseVCode.ParseString("vcode", terminated(string(src)))
	if err != nil {
		return nil, syntaxError("vcode", err)
	}

	declared := -1
	var out [][]int
	for i, e := range ast.Entries {
		if e.Header != nil {
			if i != 0 {
				return nil, errors.Wrapf(ErrHeader, "vcode line %d: header after rotations", e.Pos.Line)
			}
			declared = *e.Header
			continue
		}
		out = append(out, e.Ints)
	}
	if declared >= 0 && declared != len(out) {
		return nil, errors.Wrapf(ErrCountMismatch, "vcode: header declares %d vertices, body has %d", declared, len(out))
	}
	for v, rot := range out {
		for _, u := range rot {
			if u < 0 || u >= len(out) {
				return nil, errors.Wrapf(ErrVertexRange, "vcode: vertex %d lists neighbour %d", v, u)
			}
		}
	}

	return out, nil
}

// WriteVCode writes the "p N" header followed by one rotation per line.
func WriteVCode(w io.Writer, vcode [][]int) error {
	header := "p " + strconv.Itoa(len(vcode))
	return writeLines(w, &header, vcode)
}

// readLines parses an integer-lines file.
func readLines(r io.Reader, name string) ([][]int, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	ast, err := parseInts.ParseString(name, terminated(string(src)))
	if err != nil {
		return nil, syntaxError(name, err)
	}

	out := make([][]int, 0, len(ast.Lines))
	for _, l := range ast.Lines {
		if l.Comment && len(l.Ints) == 0 {
			continue
		}
		out = append(out, l.Ints)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}

	return out, nil
}

// writeLines writes an optional header line, then each row as "i j k \n".
func writeLines(w io.Writer, header *string, rows [][]int) error {
	bw := bufio.NewWriter(w)
	if header != nil {
		bw.WriteString(*header)
		bw.WriteByte('\n')
	}
	for _, row := range rows {
		writeRow(bw, row)
	}

	return errors.Wrap(bw.Flush(), "write")
}

func writeRow(bw *bufio.Writer, row []int) {
	for _, x := range row {
		bw.WriteString(strconv.Itoa(x))
		bw.WriteByte(' ')
	}
	bw.WriteByte('\n')
}
