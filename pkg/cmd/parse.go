package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
	"github.com/pseudomuto/sqlfixture/pkg/format"
	"github.com/pseudomuto/sqlfixture/pkg/lexpr"
	"github.com/pseudomuto/sqlfixture/pkg/parser"
	"github.com/pseudomuto/sqlfixture/pkg/testfile"
	"github.com/urfave/cli/v3"
)

// parse returns the command that turns a statement into a fixture case ready
// to paste into a .sqltest file. Statements that fail to parse produce an
// :err case instead.
//
//	$ sqlfixture parse "drop table if exists t"
//	drop table if exists t
//	--
//	(:ok (:drop-table (:if-exists #t :names ((t)))))
//	--
//	DROP TABLE IF EXISTS t
//
// Use "-" to read the statement from stdin.
func parse() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print a fixture case for a SQL statement",
		ArgsUsage: "<sql|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "print the expected tree on a single line",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sql, err := statementArg(cmd)
			if err != nil {
				return err
			}

			return writeCase(cmd.Writer, sql, cmd.Bool("compact"))
		},
	}
}

func statementArg(cmd *cli.Command) (string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return "", errors.New("a SQL statement argument is required")
	}

	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.Reader)
		if err != nil {
			return "", errors.Wrap(err, "failed to read statement from stdin")
		}

		args = []string{string(data)}
	}

	sql := strings.TrimSpace(strings.Join(args, " "))
	if sql == "" {
		return "", errors.New("empty SQL statement")
	}

	return sql, nil
}

func writeCase(w io.Writer, sql string, compact bool) error {
	var (
		expected  testfile.Expected
		canonical string
	)

	stmt, err := parser.ParseStatement(sql)
	if err != nil {
		var perr *ast.ParseError
		if !errors.As(err, &perr) {
			return err
		}

		expected.Err = perr
	} else {
		expected.Ok = stmt
		canonical = format.Statement(stmt)
	}

	encode := lexpr.Indent
	if compact {
		encode = lexpr.Marshal
	}

	tree, err := encode(expected)
	if err != nil {
		return errors.Wrap(err, "failed to encode expected tree")
	}

	out := fmt.Sprintf("%s\n--\n%s\n--\n", sql, tree)
	if canonical != "" {
		out += canonical + "\n"
	}

	_, err = io.WriteString(w, out)
	return errors.Wrap(err, "failed to write case")
}
