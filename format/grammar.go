package format

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// All text formats share one line-oriented lexer. A comment is a "c" that
// stands alone or is followed by a blank; it runs to the end of the line.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Comment", `c(?:[ \t][^\n]*)?`},
	{"Int", `-?\d+`},
	{"Ident", `[A-Za-z_][A-Za-z0-9_]*`},
	{"EOL", `\n`},
	{"Whitespace", `[ \t\r]+`},
})

// intsFile is an edge code or a trail: lines of integers. Comments stay in
// the token stream here so that a comment line can be told apart from a blank
// one, which is an empty rotation.
type intsFile struct {
	Lines []*intsLine `@@*`
}

type intsLine struct {
	Pos     lexer.Position
	Ints    []int `@Int*`
	Comment bool  `@Comment? EOL`
}

// vcodeFile is a vertex rotation with an optional "p N" header.
type vcodeFile struct {
	Entries []*vcodeEntry `( @@ | EOL )*`
}

type vcodeEntry struct {
	Pos    lexer.Position
	Header *int  `  "p" @Int EOL`
	Ints   []int `| @Int+ EOL`
}

// dimacsFile is a DIMACS edge format graph.
type dimacsFile struct {
	Entries []*dimacsEntry `( @@ | EOL )*`
}

type dimacsEntry struct {
	Pos     lexer.Position
	Problem *dimacsProblem `  "p" @@`
	Edge    *dimacsEdge    `| "e" @@`
}

type dimacsProblem struct {
	Kind  string `@Ident`
	Nodes int    `@Int`
	Edges int    `@Int EOL`
}

type dimacsEdge struct {
	U int `@Int`
	V int `@Int EOL`
}

var (
	parseInts = participle.MustBuild[intsFile](
		participle.Lexer(lineLexer),
		participle.Elide("Whitespace"),
	)
	parseVCode = participle.MustBuild[vcodeFile](
		participle.Lexer(lineLexer),
		participle.Elide("Whitespace", "Comment"),
	)
	parseDIMACS = participle.MustBuild[dimacsFile](
		participle.Lexer(lineLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// terminated makes sure the last line ends with a newline, so every grammar
// can require EOL after a record.
func terminated(src string) string {
	if src == "" || strings.HasSuffix(src, "\n") {
		return src
	}

	return src + "\n"
}

// syntaxError classifies a participle failure as ErrSyntax, keeping its
// position in the message.
func syntaxError(name string, err error) error {
	return errors.Wrapf(ErrSyntax, "%s: %v", name, err)
}
