package format

import (
	"io"
)

// ReadTrail parses a .trail or .ntrail file: integers separated by any
// whitespace, including newlines.
func ReadTrail(r io.Reader) ([]int, error) {
	lines, err := readLines(r, "trail")
	if err != nil {
		return nil, err
	}
	var out []int
	for _, l := range lines {
		out = append(out, l...)
	}

	return out, nil
}

// WriteTrail writes seq on a single line, every index followed by a space.
func WriteTrail(w io.Writer, seq []int) error {
	return writeLines(w, nil, [][]int{seq})
}
