// Package format prints statement trees from package ast as SQL.
//
// The default options produce the canonical form recorded in fixtures: a
// single line, uppercase keywords, identifiers as written, and parentheses
// only where the tree has an ast.Nested node. Parsing the canonical form of a
// tree yields the same tree again.
//
// Usage:
//
//	// Canonical single-line output
//	sql := format.Statement(stmt)
//
//	// One clause per line, for humans
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.Pretty, statements...)
//
//	// Custom options
//	formatter := format.New(format.FormatterOptions{
//		IndentSize:        2,
//		UppercaseKeywords: false,
//		Multiline:         true,
//	})
//	err := formatter.Format(&buf, statements...)
package format
