package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
)

var (
	// keywords are reserved and never lexed as identifiers.
	keywords = []string{
		"SELECT", "DISTINCT", "FROM", "WHERE", "GROUP", "BY", "HAVING", "ORDER",
		"ASC", "DESC", "LIMIT", "OFFSET", "AS", "JOIN", "INNER", "LEFT", "RIGHT",
		"FULL", "OUTER", "CROSS", "ON", "AND", "OR", "NOT", "IS", "NULL", "TRUE",
		"FALSE", "IN", "BETWEEN", "LIKE", "INSERT", "INTO", "VALUES", "UPDATE",
		"SET", "DELETE", "CREATE", "TABLE", "DROP", "IF", "EXISTS", "PRIMARY",
		"KEY", "UNIQUE", "DEFAULT",
	}

	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `'(?:[^']|'')*'`},
		{Name: "Keyword", Pattern: `(?i)\b(?:` + strings.Join(keywords, "|") + `)\b`},
		{Name: "Number", Pattern: `(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operator", Pattern: `<>|<=|>=|!=|\|\||[-+*/%=<>]`},
		{Name: "Punct", Pattern: `[(),.;]`},
	})

	parser = participle.MustBuild[script](
		participle.Lexer(sqlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.CaseInsensitive("Keyword"),
		participle.UseLookahead(4),
	)
)

type (
	script struct {
		Statements []*statement `parser:"';'* @@*"`
	}

	statement struct {
		Pos lexer.Position

		Query       *selectStmt      `parser:"( @@"`
		Insert      *insertStmt      `parser:"| @@"`
		Update      *updateStmt      `parser:"| @@"`
		Delete      *deleteStmt      `parser:"| @@"`
		CreateTable *createTableStmt `parser:"| @@"`
		DropTable   *dropTableStmt   `parser:"| @@ )"`
		Semicolons  []string         `parser:"@';'*"`
	}

	// objectName is a dotted name such as db.table.
	objectName struct {
		Parts []string `parser:"@Ident ('.' @Ident)*"`
	}
)

// Parse parses every statement read from reader.
//
// Statements are separated by semicolons; a trailing semicolon is optional.
// Errors are always *ast.ParseError. Input that cannot be split into tokens
// yields a TokenizerError, anything else a ParserError.
func Parse(reader io.Reader) ([]*ast.Statement, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}

	return ParseString(string(data))
}

// ParseString parses every statement in sql.
//
// Example usage:
//
//	stmts, err := parser.ParseString(`
//		CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64) NOT NULL);
//		INSERT INTO users (id, name) VALUES (1, 'alice'), (2, 'bob');
//		SELECT name FROM users WHERE id = 1;
//	`)
//	if err != nil {
//		var perr *ast.ParseError
//		if errors.As(err, &perr) {
//			log.Fatalf("%s error at %d:%d: %s", perr.Kind, perr.Line, perr.Column, perr.Message)
//		}
//	}
//
//	for _, stmt := range stmts {
//		fmt.Println(format.Statement(stmt))
//	}
func ParseString(sql string) ([]*ast.Statement, error) {
	if _, err := parser.Lex("", strings.NewReader(sql)); err != nil {
		return nil, tokenizerError(sql, err)
	}

	parsed, err := parser.ParseString("", sql)
	if err != nil {
		return nil, parserError(err)
	}

	stmts := make([]*ast.Statement, 0, len(parsed.Statements))
	for i, stmt := range parsed.Statements {
		if i > 0 && len(parsed.Statements[i-1].Semicolons) == 0 {
			return nil, errorAt(stmt.Pos, "expected end of statement, found %s", leadingWord(sql, stmt.Pos))
		}

		lowered, err := stmt.lower()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, lowered)
	}

	return stmts, nil
}

// ParseStatement parses sql, which must contain exactly one statement.
func ParseStatement(sql string) (*ast.Statement, error) {
	stmts, err := ParseString(sql)
	if err != nil {
		return nil, err
	}

	switch len(stmts) {
	case 0:
		return nil, &ast.ParseError{Kind: ast.ParserError, Message: "expected a statement, found end of input"}
	case 1:
		return stmts[0], nil
	default:
		return nil, &ast.ParseError{
			Kind:    ast.ParserError,
			Message: fmt.Sprintf("expected exactly one statement, found %d", len(stmts)),
		}
	}
}

func (s *statement) lower() (*ast.Statement, error) {
	var (
		out ast.Statement
		err error
	)

	switch {
	case s.Query != nil:
		out.Query, err = s.Query.lower()
	case s.Insert != nil:
		out.Insert, err = s.Insert.lower()
	case s.Update != nil:
		out.Update, err = s.Update.lower()
	case s.Delete != nil:
		out.Delete, err = s.Delete.lower()
	case s.CreateTable != nil:
		out.CreateTable, err = s.CreateTable.lower()
	case s.DropTable != nil:
		out.DropTable = s.DropTable.lower()
	}

	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (n objectName) lower() ast.ObjectName {
	return ast.ObjectName(n.Parts)
}

func tokenizerError(sql string, err error) *ast.ParseError {
	perr := &ast.ParseError{Kind: ast.TokenizerError, Message: err.Error()}

	var located participle.Error
	if errors.As(err, &located) {
		pos := located.Position()
		perr.Line, perr.Column = pos.Line, pos.Column
		perr.Message = located.Message()

		if pos.Offset >= 0 && pos.Offset < len(sql) {
			r, _ := utf8.DecodeRuneInString(sql[pos.Offset:])
			perr.Message = fmt.Sprintf("unexpected character %q", r)
		}
	}

	return perr
}

func parserError(err error) *ast.ParseError {
	perr := &ast.ParseError{Kind: ast.ParserError, Message: err.Error()}

	var located participle.Error
	if errors.As(err, &located) {
		pos := located.Position()
		perr.Line, perr.Column = pos.Line, pos.Column
		perr.Message = located.Message()
	}

	return perr
}

func errorAt(pos lexer.Position, format string, args ...any) *ast.ParseError {
	return &ast.ParseError{
		Kind:    ast.ParserError,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// leadingWord returns the first word of sql at pos, for error messages.
func leadingWord(sql string, pos lexer.Position) string {
	if pos.Offset < 0 || pos.Offset >= len(sql) {
		return "end of input"
	}

	return fmt.Sprintf("%q", strings.Fields(sql[pos.Offset:])[0])
}
