// Package parser provides a participle-based parser for a small, portable
// subset of SQL.
//
// The grammar is built with github.com/alecthomas/participle/v2 and lowered
// into the statement tree of package ast, which is what fixtures describe and
// what the format package prints. Supported statements:
//
//   - SELECT with DISTINCT, aliases, FROM, [INNER|LEFT|RIGHT|FULL|CROSS] JOIN,
//     WHERE, GROUP BY, HAVING, ORDER BY, LIMIT and OFFSET
//   - INSERT INTO ... VALUES and INSERT INTO ... SELECT
//   - UPDATE ... SET ... [WHERE]
//   - DELETE FROM ... [WHERE]
//   - CREATE TABLE [IF NOT EXISTS] with column types and constraints
//   - DROP TABLE [IF EXISTS]
//
// Keywords are case-insensitive and reserved. Binary operators are folded
// left-associatively, so `a - b - c` lowers to `(a - b) - c`; parentheses
// written in the source are kept as ast.Nested nodes.
//
// Basic usage:
//
//	stmt, err := parser.ParseStatement("SELECT id, name FROM users WHERE id = 1")
//	if err != nil {
//		var perr *ast.ParseError
//		if errors.As(err, &perr) && perr.Kind == ast.TokenizerError {
//			// the input contains characters that are not SQL
//		}
//	}
//
//	stmts, err := parser.ParseString("DROP TABLE a; DROP TABLE b;")
//
// Every error returned by this package is an *ast.ParseError carrying the
// 1-based line and column of the offending token.
package parser
