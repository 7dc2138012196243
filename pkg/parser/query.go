package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

type (
	// selectStmt represents a SELECT statement:
	//
	//	SELECT [DISTINCT] items
	//	[FROM table [joins...]]
	//	[WHERE expr]
	//	[GROUP BY expr, ...]
	//	[HAVING expr]
	//	[ORDER BY expr [ASC|DESC], ...]
	//	[LIMIT expr] [OFFSET expr]
	selectStmt struct {
		Distinct bool           `parser:"'SELECT' @'DISTINCT'?"`
		Items    []*selectItem  `parser:"@@ (',' @@)*"`
		From     *tableRef      `parser:"('FROM' @@"`
		Joins    []*joinClause  `parser:"        @@*)?"`
		Where    *expression    `parser:"('WHERE' @@)?"`
		GroupBy  []*expression  `parser:"('GROUP' 'BY' @@ (',' @@)*)?"`
		Having   *expression    `parser:"('HAVING' @@)?"`
		OrderBy  []*orderByItem `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
		Limit    *expression    `parser:"('LIMIT' @@)?"`
		Offset   *expression    `parser:"('OFFSET' @@)?"`
	}

	selectItem struct {
		Star  bool        `parser:"  @'*'"`
		Expr  *expression `parser:"| ( @@"`
		Alias *string     `parser:"    ('AS'? @Ident)? )"`
	}

	// tableRef is a table name with an optional alias. AS is optional.
	tableRef struct {
		Name  objectName `parser:"@@"`
		Alias *string    `parser:"('AS'? @Ident)?"`
	}

	joinClause struct {
		Pos lexer.Position

		Kind  *string     `parser:"@('INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS')?"`
		Outer bool        `parser:"@'OUTER'? 'JOIN'"`
		Table tableRef    `parser:"@@"`
		On    *expression `parser:"('ON' @@)?"`
	}

	orderByItem struct {
		Expr      expression `parser:"@@"`
		Direction *string    `parser:"@('ASC' | 'DESC')?"`
	}
)

func (s *selectStmt) lower() (*ast.Query, error) {
	q := &ast.Query{
		Distinct: s.Distinct,
		Where:    s.Where.lowerPtr(),
		GroupBy:  lowerList(s.GroupBy),
		Having:   s.Having.lowerPtr(),
		Limit:    s.Limit.lowerPtr(),
		Offset:   s.Offset.lowerPtr(),
	}

	for _, item := range s.Items {
		q.Projection = append(q.Projection, item.lower())
	}

	if s.From != nil {
		from := s.From.lower()
		q.From = &from
	}

	for _, j := range s.Joins {
		join, err := j.lower()
		if err != nil {
			return nil, err
		}

		q.Joins = append(q.Joins, join)
	}

	for _, item := range s.OrderBy {
		q.OrderBy = append(q.OrderBy, item.lower())
	}

	return q, nil
}

func (i *selectItem) lower() ast.SelectItem {
	if i.Star {
		return ast.SelectItem{Wildcard: true}
	}

	return ast.SelectItem{Expr: i.Expr.lowerPtr(), Alias: deref(i.Alias)}
}

func (t *tableRef) lower() ast.TableRef {
	return ast.TableRef{Name: t.Name.lower(), Alias: deref(t.Alias)}
}

func (j *joinClause) lower() (ast.Join, error) {
	kind := ast.InnerJoin
	if j.Kind != nil {
		kind = ast.JoinKind(strings.ToUpper(*j.Kind))
	}

	switch {
	case j.Outer && (kind == ast.InnerJoin || kind == ast.CrossJoin):
		return ast.Join{}, errorAt(j.Pos, "OUTER is only valid for LEFT, RIGHT or FULL joins")
	case kind == ast.CrossJoin && j.On != nil:
		return ast.Join{}, errorAt(j.Pos, "CROSS JOIN does not take an ON condition")
	case kind != ast.CrossJoin && j.On == nil:
		return ast.Join{}, errorAt(j.Pos, "expected ON condition for %s JOIN", kind)
	}

	return ast.Join{Kind: kind, Table: j.Table.lower(), On: j.On.lowerPtr()}, nil
}

func (o *orderByItem) lower() ast.OrderByExpr {
	out := ast.OrderByExpr{Expr: o.Expr.lower()}
	if o.Direction != nil {
		asc := strings.EqualFold(*o.Direction, "ASC")
		out.Asc = &asc
	}

	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
