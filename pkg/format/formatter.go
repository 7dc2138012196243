package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// IndentSize specifies the number of spaces for each indent level in
	// multi-line output
	IndentSize int
	// UppercaseKeywords whether to uppercase SQL keywords
	UppercaseKeywords bool
	// AlignColumns whether to align column definitions in multi-line CREATE TABLE
	AlignColumns bool
	// Multiline whether to put each clause on its own line
	Multiline bool
}

var (
	// Defaults produce the canonical single-line form that fixtures record.
	Defaults = FormatterOptions{
		IndentSize:        4,
		UppercaseKeywords: true,
		AlignColumns:      true,
	}

	// Pretty is Defaults with one clause per line.
	Pretty = FormatterOptions{
		IndentSize:        4,
		UppercaseKeywords: true,
		AlignColumns:      true,
		Multiline:         true,
	}
)

// Formatter prints statement trees as SQL text.
type Formatter struct {
	options FormatterOptions
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	if options.IndentSize <= 0 {
		options.IndentSize = Defaults.IndentSize
	}

	return &Formatter{options: options}
}

// Format writes each statement followed by a semicolon. Statements are
// separated by a blank line in multi-line mode and a newline otherwise.
func (f *Formatter) Format(w io.Writer, stmts ...*ast.Statement) error {
	sep := "\n"
	if f.options.Multiline {
		sep = "\n\n"
	}

	formatted := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		if s := f.Statement(stmt); s != "" {
			formatted = append(formatted, s+";")
		}
	}

	if _, err := io.WriteString(w, strings.Join(formatted, sep)); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}

	return nil
}

// Statement formats a single statement without a trailing semicolon.
func (f *Formatter) Statement(stmt *ast.Statement) string {
	if stmt == nil {
		return ""
	}

	switch {
	case stmt.Query != nil:
		return f.query(stmt.Query)
	case stmt.Insert != nil:
		return f.insert(stmt.Insert)
	case stmt.Update != nil:
		return f.update(stmt.Update)
	case stmt.Delete != nil:
		return f.delete(stmt.Delete)
	case stmt.CreateTable != nil:
		return f.createTable(stmt.CreateTable)
	case stmt.DropTable != nil:
		return f.dropTable(stmt.DropTable)
	default:
		return ""
	}
}

// Expr formats a single expression.
func (f *Formatter) Expr(e ast.Expr) string {
	return f.expr(e)
}

// Format writes the statements using the given options (convenience function)
func Format(w io.Writer, options FormatterOptions, stmts ...*ast.Statement) error {
	return New(options).Format(w, stmts...)
}

// Statement returns the canonical single-line form of stmt (convenience function)
func Statement(stmt *ast.Statement) string {
	return New(Defaults).Statement(stmt)
}
