// Package format reads and writes the plain-text files of the A-trail tool
// chain.
//
// Formats:
//
//	edge code  one line per vertex; the edge indices of its rotation.
//	vcode      optional "p N" header, then one line per vertex; the adjacent
//	           vertex indices of its rotation.
//	dimacs     "c" comments, "p edge N M", then M lines "e U V" with 1-based
//	           vertices; edges are numbered 0..M-1 in file order.
//	trail      whitespace-separated indices (.trail edges, .ntrail vertices).
//
// "c" comment lines are accepted everywhere. Blank lines are skipped except
// inside an edge code, where a blank line between rotations is the (empty)
// rotation of an isolated vertex; trailing blank lines are ignored there too.
// Writers emit every
// index followed by a single space and end each record with a newline, so
// their output is byte-compatible with the older tools.
//
// Readers are grammar based (participle). Every error wraps one of the
// sentinels below, so callers branch with errors.Is:
//
//	ErrSyntax          - the text does not match the grammar.
//	ErrHeader          - missing, repeated or misplaced header.
//	ErrCountMismatch   - header counts disagree with the body.
//	ErrVertexRange     - a vertex index outside the declared range.
package format
