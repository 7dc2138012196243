package clickhouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/pkg/errors"
)

// minExplainSyntax is the first release with EXPLAIN SYNTAX.
var minExplainSyntax = VersionInfo{Major: 20, Minor: 6}

// SyntaxError is returned by Validate when the server refuses a statement.
type SyntaxError struct {
	SQL     string
	Code    int32
	Name    string
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("code %d (%s): %s", e.Code, e.Name, e.Message)
	}

	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

// Validate asks the server to parse sql without running it. Statements the
// server cannot parse yield a *SyntaxError.
//
// Validate satisfies sqltest.Validator.
func (c *Client) Validate(ctx context.Context, sql string) error {
	_, err := c.Explain(ctx, sql)
	return err
}

// Explain returns the server's rewritten form of sql as reported by
// EXPLAIN SYNTAX.
func (c *Client) Explain(ctx context.Context, sql string) (string, error) {
	if err := c.checkVersion(ctx); err != nil {
		return "", err
	}

	rows, err := c.conn.Query(ctx, explainQuery(sql))
	if err != nil {
		return "", syntaxError(sql, err)
	}
	defer func() { _ = rows.Close() }()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "", errors.Wrap(err, "failed to read EXPLAIN output")
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return "", syntaxError(sql, err)
	}

	return strings.Join(lines, "\n"), nil
}

func (c *Client) checkVersion(ctx context.Context) error {
	if c.version == nil {
		v, err := c.GetVersion(ctx)
		if err != nil {
			return err
		}

		c.version = v
	}

	if !c.version.IsAtLeast(minExplainSyntax.Major, minExplainSyntax.Minor) {
		return errors.Errorf("ClickHouse %s does not support EXPLAIN SYNTAX (need %d.%d+)",
			c.version, minExplainSyntax.Major, minExplainSyntax.Minor)
	}

	return nil
}

func explainQuery(sql string) string {
	return "EXPLAIN SYNTAX " + strings.TrimRight(strings.TrimSpace(sql), "; \t\n")
}

// syntaxError converts server exceptions to *SyntaxError and wraps anything
// else, such as network failures.
func syntaxError(sql string, err error) error {
	var ex *clickhouse.Exception
	if errors.As(err, &ex) {
		return &SyntaxError{SQL: sql, Code: ex.Code, Name: ex.Name, Message: ex.Message}
	}

	return errors.Wrap(err, "failed to run EXPLAIN SYNTAX")
}
