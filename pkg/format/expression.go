package format

import (
	"strings"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

// expr formats an expression on a single line
//
//nolint:cyclop // one case per expression kind
func (f *Formatter) expr(e ast.Expr) string {
	switch {
	case e.Ident != nil:
		return *e.Ident
	case len(e.Compound) > 0:
		return strings.Join(e.Compound, ".")
	case e.Number != nil:
		return *e.Number
	case e.String != nil:
		return quote(*e.String)
	case e.Bool != nil:
		if *e.Bool {
			return f.keyword("TRUE")
		}
		return f.keyword("FALSE")
	case e.Null:
		return f.keyword("NULL")
	case e.Binary != nil:
		return f.expr(e.Binary.Left) + " " + f.operator(e.Binary.Op) + " " + f.expr(e.Binary.Right)
	case e.Unary != nil:
		return f.unary(e.Unary)
	case e.Function != nil:
		return f.function(e.Function)
	case e.Nested != nil:
		return "(" + f.expr(*e.Nested) + ")"
	case e.IsNull != nil:
		if e.IsNull.Negated {
			return f.expr(e.IsNull.Expr) + " " + f.keyword("IS NOT NULL")
		}
		return f.expr(e.IsNull.Expr) + " " + f.keyword("IS NULL")
	case e.Between != nil:
		return f.expr(e.Between.Expr) + " " + f.negated(e.Between.Negated, "BETWEEN") + " " +
			f.expr(e.Between.Low) + " " + f.keyword("AND") + " " + f.expr(e.Between.High)
	case e.InList != nil:
		return f.expr(e.InList.Expr) + " " + f.negated(e.InList.Negated, "IN") + " (" + f.exprList(e.InList.List) + ")"
	default:
		return ""
	}
}

func (f *Formatter) exprList(exprs []ast.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, f.expr(e))
	}
	return strings.Join(parts, ", ")
}

// operator cases word operators (AND, OR, LIKE) and leaves symbols alone
func (f *Formatter) operator(op string) string {
	if op != "" && isLetter(op[0]) {
		return f.keyword(op)
	}
	return op
}

func (f *Formatter) negated(negated bool, kw string) string {
	if negated {
		return f.keyword("NOT " + kw)
	}
	return f.keyword(kw)
}

func (f *Formatter) unary(u *ast.UnaryExpr) string {
	operand := f.expr(u.Expr)
	if isLetter(u.Op[0]) {
		return f.keyword(u.Op) + " " + operand
	}

	// keep "- -1" from turning into a comment
	if strings.HasPrefix(operand, "-") || strings.HasPrefix(operand, "+") {
		return u.Op + " " + operand
	}
	return u.Op + operand
}

func (f *Formatter) function(fn *ast.Function) string {
	var args string
	switch {
	case fn.Star:
		args = "*"
	case fn.Distinct:
		args = f.keyword("DISTINCT") + " " + f.exprList(fn.Args)
	default:
		args = f.exprList(fn.Args)
	}
	return fn.Name + "(" + args + ")"
}

// dataType formats a column type such as VARCHAR(20)
func (f *Formatter) dataType(dt ast.DataType) string {
	if len(dt.Args) == 0 {
		return dt.Name
	}
	return dt.Name + "(" + strings.Join(dt.Args, ", ") + ")"
}

// quote renders a string literal, doubling embedded quotes
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
