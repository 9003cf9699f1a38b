package catalog

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// typeExpr is the syntax of a type expression such as
// "shop.Page<list<shop.Order>>" or "int[]".
type typeExpr struct {
	Name string      `parser:"@Ident ( @'.' @Ident )*"`
	Args []*typeExpr `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Dims []string    `parser:"( @'[' ']' )*"`
}

var exprParser = participle.MustBuild[typeExpr](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[<>,.\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// parseExpr parses a type expression.
func parseExpr(text string) (*typeExpr, error) {
	expr, err := exprParser.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", text, err)
	}
	return expr, nil
}

func (e *typeExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	if len(e.Args) > 0 {
		b.WriteByte('<')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteByte('>')
	}
	for range e.Dims {
		b.WriteString("[]")
	}
	return b.String()
}
