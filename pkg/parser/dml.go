package parser

import (
	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

type (
	// insertStmt represents:
	//
	//	INSERT INTO name [(column, ...)] VALUES (expr, ...), ...
	//	INSERT INTO name [(column, ...)] SELECT ...
	insertStmt struct {
		Table   objectName   `parser:"'INSERT' 'INTO' @@"`
		Columns []string     `parser:"('(' @Ident (',' @Ident)* ')')?"`
		Rows    []*valuesRow `parser:"( 'VALUES' @@ (',' @@)*"`
		Query   *selectStmt  `parser:"| @@ )"`
	}

	valuesRow struct {
		Values []*expression `parser:"'(' @@ (',' @@)* ')'"`
	}

	// updateStmt represents UPDATE name SET column = expr, ... [WHERE expr].
	updateStmt struct {
		Table       objectName    `parser:"'UPDATE' @@"`
		Assignments []*assignment `parser:"'SET' @@ (',' @@)*"`
		Where       *expression   `parser:"('WHERE' @@)?"`
	}

	assignment struct {
		Column string     `parser:"@Ident '='"`
		Value  expression `parser:"@@"`
	}

	// deleteStmt represents DELETE FROM name [WHERE expr].
	deleteStmt struct {
		Table objectName  `parser:"'DELETE' 'FROM' @@"`
		Where *expression `parser:"('WHERE' @@)?"`
	}
)

func (s *insertStmt) lower() (*ast.Insert, error) {
	out := &ast.Insert{
		Table:   s.Table.lower(),
		Columns: s.Columns,
	}

	for _, row := range s.Rows {
		out.Values = append(out.Values, lowerList(row.Values))
	}

	if s.Query != nil {
		q, err := s.Query.lower()
		if err != nil {
			return nil, err
		}

		out.Query = q
	}

	return out, nil
}

func (s *updateStmt) lower() (*ast.Update, error) {
	out := &ast.Update{
		Table: s.Table.lower(),
		Where: s.Where.lowerPtr(),
	}

	for _, a := range s.Assignments {
		out.Assignments = append(out.Assignments, ast.Assignment{Column: a.Column, Value: a.Value.lower()})
	}

	return out, nil
}

func (s *deleteStmt) lower() (*ast.Delete, error) {
	return &ast.Delete{
		Table: s.Table.lower(),
		Where: s.Where.lowerPtr(),
	}, nil
}
