package ast

type (
	// Expr is a scalar expression. Exactly one field is set.
	//
	// Literals keep their source text: Number holds the digits as written and
	// String holds the unquoted value.
	Expr struct {
		Ident    *string
		Compound []string
		Number   *string
		String   *string
		Bool     *bool
		Null     bool
		Binary   *BinaryExpr
		Unary    *UnaryExpr
		Function *Function
		Nested   *Expr
		IsNull   *IsNull
		Between  *Between
		InList   *InList
	}

	// BinaryExpr is `left op right`. Op is upper-cased for keyword operators
	// (AND, OR, LIKE, NOT LIKE).
	BinaryExpr struct {
		Left  Expr
		Op    string
		Right Expr
	}

	// UnaryExpr is a prefix operator applied to an expression: -, + or NOT.
	UnaryExpr struct {
		Op   string
		Expr Expr
	}

	// Function is a call such as count(*) or sum(DISTINCT x).
	Function struct {
		Name     string
		Distinct bool
		Star     bool
		Args     []Expr
	}

	// IsNull is `expr IS [NOT] NULL`.
	IsNull struct {
		Expr    Expr
		Negated bool
	}

	// Between is `expr [NOT] BETWEEN low AND high`.
	Between struct {
		Expr    Expr
		Negated bool
		Low     Expr
		High    Expr
	}

	// InList is `expr [NOT] IN (list...)`.
	InList struct {
		Expr    Expr
		Negated bool
		List    []Expr
	}
)

// Ident returns an identifier expression.
func Ident(name string) Expr {
	return Expr{Ident: &name}
}

// Compound returns a qualified identifier expression such as t.id.
func Compound(parts ...string) Expr {
	return Expr{Compound: parts}
}

// Number returns a numeric literal expression.
func Number(text string) Expr {
	return Expr{Number: &text}
}

// String returns a string literal expression.
func String(value string) Expr {
	return Expr{String: &value}
}

// Bool returns a boolean literal expression.
func Bool(value bool) Expr {
	return Expr{Bool: &value}
}

// Null returns the NULL literal.
func Null() Expr {
	return Expr{Null: true}
}

// Binary returns `left op right`.
func Binary(left Expr, op string, right Expr) Expr {
	return Expr{Binary: &BinaryExpr{Left: left, Op: op, Right: right}}
}

// Unary returns `op expr`.
func Unary(op string, expr Expr) Expr {
	return Expr{Unary: &UnaryExpr{Op: op, Expr: expr}}
}

// Nested returns a parenthesized expression.
func Nested(expr Expr) Expr {
	return Expr{Nested: &expr}
}

// Call returns a function call with the given arguments.
func Call(name string, args ...Expr) Expr {
	return Expr{Function: &Function{Name: name, Args: args}}
}

// Ptr returns a pointer to the expression. Handy for optional clauses.
func (e Expr) Ptr() *Expr {
	return &e
}
