// Package sdl parses .quern schema definition files and registers their
// tables. The language is a thin declarative layer over the registry:
//
//	table users {
//	    id        serial  @pk
//	    full_name text
//	    age       integer @nullable
//	    role      enum(admin, member) @default(member)
//	}
package sdl

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the parse tree of one schema file.
type File struct {
	Pos    lexer.Position
	Tables []*TableDecl `parser:"@@*"`
}

// TableDecl is one table block.
type TableDecl struct {
	Pos     lexer.Position
	Name    string        `parser:"'table' @Ident"`
	Columns []*ColumnDecl `parser:"'{' @@* '}'"`
}

// ColumnDecl is one column line: name, type, optional enum values,
// optional attributes.
type ColumnDecl struct {
	Pos   lexer.Position
	Name  string      `parser:"@Ident"`
	Type  string      `parser:"@Ident"`
	Enum  []string    `parser:"('(' @Ident (',' @Ident)* ')')?"`
	Attrs []*AttrDecl `parser:"@@*"`
}

// AttrDecl is an @attribute with optional arguments.
type AttrDecl struct {
	Pos  lexer.Position
	Name string     `parser:"'@' @Ident"`
	Args []*AttrArg `parser:"('(' @@ (',' @@)* ')')?"`
}

// AttrArg is a single attribute argument: a string, number, or (possibly
// dotted) identifier.
type AttrArg struct {
	Pos    lexer.Position
	Str    *string  `parser:"@String"`
	Number *float64 `parser:"| @Number"`
	Ref    *RefArg  `parser:"| @@"`
}

// RefArg is an identifier argument, optionally qualified as table.column.
type RefArg struct {
	Table  string  `parser:"@Ident"`
	Column *string `parser:"('.' @Ident)?"`
}

var parser = participle.MustBuild[File](
	participle.Lexer(quernLexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parse parses a schema definition from an io.Reader.
func Parse(filename string, r io.Reader) (*File, error) {
	return parser.Parse(filename, r)
}

// ParseString parses a schema definition from a string.
func ParseString(filename, input string) (*File, error) {
	return Parse(filename, strings.NewReader(input))
}
