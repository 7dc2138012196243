package format

import (
	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

// query formats a SELECT statement
func (f *Formatter) query(q *ast.Query) string {
	head := f.keyword("SELECT")
	if q.Distinct {
		head += " " + f.keyword("DISTINCT")
	}

	clauses := []string{f.clause(head, f.projection(q.Projection))}

	if q.From != nil {
		clauses = append(clauses, f.keyword("FROM")+" "+f.tableRef(*q.From))
	}

	for _, j := range q.Joins {
		clauses = append(clauses, f.join(j))
	}

	if q.Where != nil {
		clauses = append(clauses, f.keyword("WHERE")+" "+f.expr(*q.Where))
	}

	if len(q.GroupBy) > 0 {
		clauses = append(clauses, f.clause(f.keyword("GROUP BY"), f.exprs(q.GroupBy)))
	}

	if q.Having != nil {
		clauses = append(clauses, f.keyword("HAVING")+" "+f.expr(*q.Having))
	}

	if len(q.OrderBy) > 0 {
		items := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			items = append(items, f.orderBy(o))
		}
		clauses = append(clauses, f.clause(f.keyword("ORDER BY"), items))
	}

	if q.Limit != nil {
		clauses = append(clauses, f.keyword("LIMIT")+" "+f.expr(*q.Limit))
	}

	if q.Offset != nil {
		clauses = append(clauses, f.keyword("OFFSET")+" "+f.expr(*q.Offset))
	}

	return f.joinClauses(clauses...)
}

func (f *Formatter) projection(items []ast.SelectItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case item.Wildcard:
			out = append(out, "*")
		case item.Alias != "":
			out = append(out, f.expr(*item.Expr)+" "+f.keyword("AS")+" "+item.Alias)
		case item.Expr != nil:
			out = append(out, f.expr(*item.Expr))
		}
	}
	return out
}

func (f *Formatter) exprs(exprs []ast.Expr) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, f.expr(e))
	}
	return out
}

func (f *Formatter) tableRef(t ast.TableRef) string {
	if t.Alias != "" {
		return t.Name.String() + " " + f.keyword("AS") + " " + t.Alias
	}
	return t.Name.String()
}

// join formats a JOIN clause. Inner joins print as a bare JOIN.
func (f *Formatter) join(j ast.Join) string {
	kw := f.keyword("JOIN")
	if j.Kind != "" && j.Kind != ast.InnerJoin {
		kw = f.keyword(string(j.Kind) + " JOIN")
	}

	out := kw + " " + f.tableRef(j.Table)
	if j.On != nil {
		out += " " + f.keyword("ON") + " " + f.expr(*j.On)
	}
	return out
}

func (f *Formatter) orderBy(o ast.OrderByExpr) string {
	out := f.expr(o.Expr)
	if o.Asc != nil {
		if *o.Asc {
			out += " " + f.keyword("ASC")
		} else {
			out += " " + f.keyword("DESC")
		}
	}
	return out
}
