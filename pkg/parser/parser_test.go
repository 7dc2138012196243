package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pseudomuto/sqlfixture/pkg/ast"
	. "github.com/pseudomuto/sqlfixture/pkg/parser"
	"github.com/pseudomuto/sqlfixture/pkg/sqltest"
	"github.com/stretchr/testify/require"
)

func TestFixtures(t *testing.T) {
	sqltest.RunGlob(t, "testdata/*.sqltest")
}

func TestParse(t *testing.T) {
	sql := `CREATE TABLE events (id INT, name TEXT);
INSERT INTO events VALUES (1, 'signup');
SELECT name FROM events;`

	stmts, err := Parse(strings.NewReader(sql))
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	require.NotNil(t, stmts[0].CreateTable)
	require.Equal(t, ast.ObjectName{"events"}, stmts[0].CreateTable.Name)
	require.Len(t, stmts[0].CreateTable.Columns, 2)

	require.NotNil(t, stmts[1].Insert)
	require.Equal(t, [][]ast.Expr{{ast.Number("1"), ast.String("signup")}}, stmts[1].Insert.Values)

	require.NotNil(t, stmts[2].Query)
	require.Equal(t, &ast.TableRef{Name: ast.ObjectName{"events"}}, stmts[2].Query.From)
}

func TestParseString_Empty(t *testing.T) {
	for _, sql := range []string{"", "   \n\t", "-- just a comment", "/* block */ ;;"} {
		stmts, err := ParseString(sql)
		require.NoError(t, err, sql)
		require.Empty(t, stmts, sql)
	}
}

func TestParseStatement(t *testing.T) {
	stmt, err := ParseStatement("SELECT a, count(*) FROM t /* trailing */ WHERE a > 1 -- done")
	require.NoError(t, err)

	require.Equal(t, &ast.Statement{
		Query: &ast.Query{
			Projection: []ast.SelectItem{
				{Expr: ast.Ident("a").Ptr()},
				{Expr: ast.Expr{Function: &ast.Function{Name: "count", Star: true}}.Ptr()},
			},
			From:  &ast.TableRef{Name: ast.ObjectName{"t"}},
			Where: ast.Binary(ast.Ident("a"), ">", ast.Number("1")).Ptr(),
		},
	}, stmt)
}

func TestParseStatement_FunctionCalls(t *testing.T) {
	tests := []struct {
		sql  string
		want *ast.Function
	}{
		{"SELECT now()", &ast.Function{Name: "now"}},
		{"SELECT count(*)", &ast.Function{Name: "count", Star: true}},
		{"SELECT count(DISTINCT a)", &ast.Function{Name: "count", Distinct: true, Args: []ast.Expr{ast.Ident("a")}}},
		{"SELECT coalesce(a, 1)", &ast.Function{Name: "coalesce", Args: []ast.Expr{ast.Ident("a"), ast.Number("1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt, err := ParseStatement(tt.sql)
			require.NoError(t, err)
			require.Equal(t, tt.want, stmt.Query.Projection[0].Expr.Function)
		})
	}
}

func TestParseStatement_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		kind ast.ErrorKind
		msg  string
		line int
		col  int
	}{
		{"empty", "", ast.ParserError, "expected a statement", 0, 0},
		{"two statements", "DROP TABLE a; DROP TABLE b", ast.ParserError, "expected exactly one statement, found 2", 0, 0},
		{"missing separator", "DROP TABLE a\nDROP TABLE b", ast.ParserError, `expected end of statement, found "DROP"`, 2, 1},
		{"bad character", "SELECT 1 ? 2", ast.TokenizerError, "unexpected character '?'", 1, 10},
		{"unterminated string", "SELECT\n  'abc", ast.TokenizerError, "unexpected character", 2, 3},
		{"dangling operator", "SELECT 1 +", ast.ParserError, "unexpected token", 0, 0},
		{"join without condition", "SELECT * FROM a LEFT JOIN b", ast.ParserError, "expected ON condition for LEFT JOIN", 1, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseStatement(tt.sql)

			var perr *ast.ParseError
			require.True(t, errors.As(err, &perr), "expected *ast.ParseError, got %T", err)
			require.Equal(t, tt.kind, perr.Kind)
			require.Contains(t, perr.Message, tt.msg)

			if tt.line > 0 {
				require.Equal(t, tt.line, perr.Line)
				require.Equal(t, tt.col, perr.Column)
			}
		})
	}
}

func TestParseString_LowersKeywordCase(t *testing.T) {
	stmt, err := ParseStatement("select * from a left outer join b on x like 'y' and not z")
	require.NoError(t, err)

	join := stmt.Query.Joins[0]
	require.Equal(t, ast.LeftJoin, join.Kind)
	require.Equal(t, "AND", join.On.Binary.Op)
	require.Equal(t, "LIKE", join.On.Binary.Left.Binary.Op)
	require.Equal(t, "NOT", join.On.Binary.Right.Unary.Op)
}
