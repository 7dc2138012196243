package parser

import (
	"strings"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

type (
	// expression is the entry point of the expression grammar. Precedence
	// levels (lowest to highest):
	//  1. OR
	//  2. AND
	//  3. NOT
	//  4. Comparison (=, <>, <, >, IS NULL, BETWEEN, IN, LIKE)
	//  5. Addition/Subtraction/Concatenation (+, -, ||)
	//  6. Multiplication/Division/Modulo (*, /, %)
	//  7. Unary (+, -)
	//  8. Primary (literals, columns, function calls, parentheses)
	expression struct {
		Or *orExpr `parser:"@@"`
	}

	orExpr struct {
		Left *andExpr  `parser:"@@"`
		Rest []*orRest `parser:"@@*"`
	}

	orRest struct {
		Op    string   `parser:"@'OR'"`
		Right *andExpr `parser:"@@"`
	}

	andExpr struct {
		Left *notExpr   `parser:"@@"`
		Rest []*andRest `parser:"@@*"`
	}

	andRest struct {
		Op    string   `parser:"@'AND'"`
		Right *notExpr `parser:"@@"`
	}

	notExpr struct {
		Not        *notExpr    `parser:"  'NOT' @@"`
		Comparison *comparison `parser:"| @@"`
	}

	comparison struct {
		Left *additive       `parser:"@@"`
		Tail *comparisonTail `parser:"@@?"`
	}

	comparisonTail struct {
		Compare *compareTail `parser:"  @@"`
		IsNull  *isNullTail  `parser:"| @@"`
		Between *betweenTail `parser:"| @@"`
		In      *inTail      `parser:"| @@"`
		Like    *likeTail    `parser:"| @@"`
	}

	compareTail struct {
		Op    string    `parser:"@('=' | '<>' | '!=' | '<=' | '>=' | '<' | '>')"`
		Right *additive `parser:"@@"`
	}

	isNullTail struct {
		Not bool `parser:"'IS' @'NOT'? 'NULL'"`
	}

	betweenTail struct {
		Not  bool      `parser:"@'NOT'? 'BETWEEN'"`
		Low  *additive `parser:"@@ 'AND'"`
		High *additive `parser:"@@"`
	}

	inTail struct {
		Not  bool          `parser:"@'NOT'? 'IN'"`
		List []*expression `parser:"'(' @@ (',' @@)* ')'"`
	}

	likeTail struct {
		Not     bool      `parser:"@'NOT'? 'LIKE'"`
		Pattern *additive `parser:"@@"`
	}

	additive struct {
		Left *multiplicative `parser:"@@"`
		Rest []*additiveRest `parser:"@@*"`
	}

	additiveRest struct {
		Op    string          `parser:"@('+' | '-' | '||')"`
		Right *multiplicative `parser:"@@"`
	}

	multiplicative struct {
		Left *unary                `parser:"@@"`
		Rest []*multiplicativeRest `parser:"@@*"`
	}

	multiplicativeRest struct {
		Op    string `parser:"@('*' | '/' | '%')"`
		Right *unary `parser:"@@"`
	}

	unary struct {
		Op      string   `parser:"  ( @('-' | '+')"`
		Operand *unary   `parser:"    @@ )"`
		Primary *primary `parser:"| @@"`
	}

	primary struct {
		Number *string       `parser:"  @Number"`
		String *string       `parser:"| @String"`
		Bool   *string       `parser:"| @('TRUE' | 'FALSE')"`
		Null   bool          `parser:"| @'NULL'"`
		Call   *functionCall `parser:"| @@"`
		Column *objectName   `parser:"| @@"`
		Nested *expression   `parser:"| '(' @@ ')'"`
	}

	functionCall struct {
		Name     string        `parser:"@Ident '('"`
		Star     bool          `parser:"( @'*'"`
		Distinct bool          `parser:"| @'DISTINCT'?"`
		Args     []*expression `parser:"  @@ (',' @@)* )? ')'"`
	}
)

func (e *expression) lower() ast.Expr {
	return e.Or.lower()
}

func (e *expression) lowerPtr() *ast.Expr {
	if e == nil {
		return nil
	}

	return e.lower().Ptr()
}

func lowerList(exprs []*expression) []ast.Expr {
	if len(exprs) == 0 {
		return nil
	}

	out := make([]ast.Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e.lower())
	}

	return out
}

func (o *orExpr) lower() ast.Expr {
	out := o.Left.lower()
	for _, rest := range o.Rest {
		out = ast.Binary(out, strings.ToUpper(rest.Op), rest.Right.lower())
	}

	return out
}

func (a *andExpr) lower() ast.Expr {
	out := a.Left.lower()
	for _, rest := range a.Rest {
		out = ast.Binary(out, strings.ToUpper(rest.Op), rest.Right.lower())
	}

	return out
}

func (n *notExpr) lower() ast.Expr {
	if n.Not != nil {
		return ast.Unary("NOT", n.Not.lower())
	}

	return n.Comparison.lower()
}

func (c *comparison) lower() ast.Expr {
	left := c.Left.lower()
	if c.Tail == nil {
		return left
	}

	tail := c.Tail
	switch {
	case tail.Compare != nil:
		return ast.Binary(left, tail.Compare.Op, tail.Compare.Right.lower())
	case tail.IsNull != nil:
		return ast.Expr{IsNull: &ast.IsNull{Expr: left, Negated: tail.IsNull.Not}}
	case tail.Between != nil:
		return ast.Expr{Between: &ast.Between{
			Expr:    left,
			Negated: tail.Between.Not,
			Low:     tail.Between.Low.lower(),
			High:    tail.Between.High.lower(),
		}}
	case tail.In != nil:
		return ast.Expr{InList: &ast.InList{Expr: left, Negated: tail.In.Not, List: lowerList(tail.In.List)}}
	default:
		op := "LIKE"
		if tail.Like.Not {
			op = "NOT LIKE"
		}

		return ast.Binary(left, op, tail.Like.Pattern.lower())
	}
}

func (a *additive) lower() ast.Expr {
	out := a.Left.lower()
	for _, rest := range a.Rest {
		out = ast.Binary(out, rest.Op, rest.Right.lower())
	}

	return out
}

func (m *multiplicative) lower() ast.Expr {
	out := m.Left.lower()
	for _, rest := range m.Rest {
		out = ast.Binary(out, rest.Op, rest.Right.lower())
	}

	return out
}

func (u *unary) lower() ast.Expr {
	if u.Operand != nil {
		return ast.Unary(u.Op, u.Operand.lower())
	}

	return u.Primary.lower()
}

func (p *primary) lower() ast.Expr {
	switch {
	case p.Number != nil:
		return ast.Number(*p.Number)
	case p.String != nil:
		return ast.String(unquote(*p.String))
	case p.Bool != nil:
		return ast.Bool(strings.EqualFold(*p.Bool, "TRUE"))
	case p.Null:
		return ast.Null()
	case p.Call != nil:
		return p.Call.lower()
	case p.Column != nil:
		if len(p.Column.Parts) == 1 {
			return ast.Ident(p.Column.Parts[0])
		}

		return ast.Compound(p.Column.Parts...)
	default:
		return ast.Nested(p.Nested.lower())
	}
}

func (f *functionCall) lower() ast.Expr {
	return ast.Expr{Function: &ast.Function{
		Name:     f.Name,
		Distinct: f.Distinct,
		Star:     f.Star,
		Args:     lowerList(f.Args),
	}}
}

// unquote strips the quotes of a string literal and collapses doubled quotes.
func unquote(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}
