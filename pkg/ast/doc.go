// Package ast defines the statement tree produced by the parser package and
// encoded in the expected-tree section of fixture files.
//
// The tree favours plain structs over interfaces: a Statement or Expr is a
// union in which exactly one field is set. This keeps values comparable with
// go-cmp and lets the lexpr package decode them from property lists such as:
//
//	(:query (:projection ((:expr (:number "1")))))
//
// ParseError is the structured failure the parser returns. Fixtures use it to
// describe statements that must be rejected.
package ast
