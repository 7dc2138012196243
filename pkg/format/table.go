package format

import (
	"strings"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

// createTable formats a CREATE TABLE statement. Multi-line output puts each
// column on its own line, aligning types when AlignColumns is set.
func (f *Formatter) createTable(stmt *ast.CreateTable) string {
	head := f.keyword("CREATE TABLE")
	if stmt.IfNotExists {
		head += " " + f.keyword("IF NOT EXISTS")
	}
	head += " " + stmt.Name.String()

	width := 0
	if f.options.Multiline && f.options.AlignColumns {
		for _, col := range stmt.Columns {
			width = max(width, len(col.Name))
		}
	}

	columns := make([]string, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		columns = append(columns, f.columnDef(col, width))
	}

	if !f.options.Multiline {
		return head + " (" + strings.Join(columns, ", ") + ")"
	}

	prefix := f.indent(1)
	return head + " (\n" + prefix + strings.Join(columns, ",\n"+prefix) + "\n)"
}

func (f *Formatter) columnDef(col ast.ColumnDef, width int) string {
	parts := []string{col.Name + strings.Repeat(" ", max(0, width-len(col.Name))), f.dataType(col.DataType)}

	for _, opt := range col.Options {
		switch {
		case opt.NotNull:
			parts = append(parts, f.keyword("NOT NULL"))
		case opt.Null:
			parts = append(parts, f.keyword("NULL"))
		case opt.PrimaryKey:
			parts = append(parts, f.keyword("PRIMARY KEY"))
		case opt.Unique:
			parts = append(parts, f.keyword("UNIQUE"))
		case opt.Default != nil:
			parts = append(parts, f.keyword("DEFAULT")+" "+f.expr(*opt.Default))
		}
	}

	return strings.Join(parts, " ")
}

// dropTable formats a DROP TABLE statement
func (f *Formatter) dropTable(stmt *ast.DropTable) string {
	parts := []string{f.keyword("DROP TABLE")}
	if stmt.IfExists {
		parts = append(parts, f.keyword("IF EXISTS"))
	}

	names := make([]string, 0, len(stmt.Names))
	for _, name := range stmt.Names {
		names = append(names, name.String())
	}
	parts = append(parts, strings.Join(names, ", "))

	return strings.Join(parts, " ")
}
