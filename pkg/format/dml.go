package format

import (
	"strings"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

// insert formats INSERT INTO ... VALUES or INSERT INTO ... SELECT
func (f *Formatter) insert(stmt *ast.Insert) string {
	head := f.keyword("INSERT INTO") + " " + stmt.Table.String()
	if len(stmt.Columns) > 0 {
		head += " (" + strings.Join(stmt.Columns, ", ") + ")"
	}

	if stmt.Query != nil {
		return f.joinClauses(head, f.query(stmt.Query))
	}

	rows := make([]string, 0, len(stmt.Values))
	for _, row := range stmt.Values {
		rows = append(rows, "("+f.exprList(row)+")")
	}

	return f.joinClauses(head, f.clause(f.keyword("VALUES"), rows))
}

// update formats UPDATE ... SET ... [WHERE ...]
func (f *Formatter) update(stmt *ast.Update) string {
	assignments := make([]string, 0, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		assignments = append(assignments, a.Column+" = "+f.expr(a.Value))
	}

	return f.joinClauses(
		f.keyword("UPDATE")+" "+stmt.Table.String(),
		f.clause(f.keyword("SET"), assignments),
		f.where(stmt.Where),
	)
}

// delete formats DELETE FROM ... [WHERE ...]
func (f *Formatter) delete(stmt *ast.Delete) string {
	return f.joinClauses(
		f.keyword("DELETE FROM")+" "+stmt.Table.String(),
		f.where(stmt.Where),
	)
}

func (f *Formatter) where(e *ast.Expr) string {
	if e == nil {
		return ""
	}
	return f.keyword("WHERE") + " " + f.expr(*e)
}
