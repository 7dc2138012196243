package parser

import (
	"strings"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

type (
	// createTableStmt represents:
	//
	//	CREATE TABLE [IF NOT EXISTS] name (
	//	  column type [NOT NULL | NULL | PRIMARY KEY | UNIQUE | DEFAULT expr]...,
	//	  ...
	//	)
	createTableStmt struct {
		IfNotExists bool         `parser:"'CREATE' 'TABLE' @('IF' 'NOT' 'EXISTS')?"`
		Name        objectName   `parser:"@@"`
		Columns     []*columnDef `parser:"'(' @@ (',' @@)* ')'"`
	}

	columnDef struct {
		Name     string          `parser:"@Ident"`
		DataType dataType        `parser:"@@"`
		Options  []*columnOption `parser:"@@*"`
	}

	// dataType is a type name with optional numeric arguments, e.g. DECIMAL(10, 2).
	dataType struct {
		Name string   `parser:"@Ident"`
		Args []string `parser:"('(' @Number (',' @Number)* ')')?"`
	}

	columnOption struct {
		NotNull    bool        `parser:"  @('NOT' 'NULL')"`
		Null       bool        `parser:"| @'NULL'"`
		PrimaryKey bool        `parser:"| @('PRIMARY' 'KEY')"`
		Unique     bool        `parser:"| @'UNIQUE'"`
		Default    *expression `parser:"| 'DEFAULT' @@"`
	}

	// dropTableStmt represents DROP TABLE [IF EXISTS] name [, name...].
	dropTableStmt struct {
		IfExists bool         `parser:"'DROP' 'TABLE' @('IF' 'EXISTS')?"`
		Names    []objectName `parser:"@@ (',' @@)*"`
	}
)

func (s *createTableStmt) lower() (*ast.CreateTable, error) {
	out := &ast.CreateTable{
		IfNotExists: s.IfNotExists,
		Name:        s.Name.lower(),
	}

	for _, col := range s.Columns {
		out.Columns = append(out.Columns, col.lower())
	}

	return out, nil
}

func (c *columnDef) lower() ast.ColumnDef {
	out := ast.ColumnDef{
		Name: c.Name,
		DataType: ast.DataType{
			Name: strings.ToUpper(c.DataType.Name),
			Args: c.DataType.Args,
		},
	}

	for _, opt := range c.Options {
		out.Options = append(out.Options, ast.ColumnOption{
			NotNull:    opt.NotNull,
			Null:       opt.Null,
			PrimaryKey: opt.PrimaryKey,
			Unique:     opt.Unique,
			Default:    opt.Default.lowerPtr(),
		})
	}

	return out
}

func (s *dropTableStmt) lower() *ast.DropTable {
	out := &ast.DropTable{IfExists: s.IfExists}
	for _, name := range s.Names {
		out.Names = append(out.Names, name.lower())
	}

	return out
}
