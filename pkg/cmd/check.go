package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/config"
	"github.com/pseudomuto/sqlfixture/pkg/sqltest"
	"github.com/urfave/cli/v3"
)

// check returns the command that runs fixture files.
//
// Every case is parsed, compared with its expected tree, printed and compared
// with its canonical text, and (unless disabled) the canonical text is parsed
// again. With --clickhouse-dsn or --docker the canonical text of each query is
// also sent to ClickHouse with EXPLAIN SYNTAX.
//
// Paths may be fixture files, directories (walked for *.sqltest) or globs.
// Without paths, the `fixtures` patterns from sqlfixture.yaml are used.
//
// Examples:
//
//	sqlfixture check
//	sqlfixture check parser/testdata
//	sqlfixture check --docker 'testdata/select*.sqltest'
//	CH_DATABASE_URL=localhost:9000 sqlfixture check
func check(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run fixture files and report failing cases",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "clickhouse-dsn",
				Usage:   "validate canonical queries against this ClickHouse server",
				Sources: cli.EnvVars("CH_DATABASE_URL"),
			},
			&cli.BoolFlag{
				Name:  "docker",
				Usage: "validate canonical queries against a ClickHouse container",
			},
			&cli.StringFlag{
				Name:  "clickhouse-version",
				Usage: "ClickHouse image tag used with --docker",
			},
			&cli.BoolFlag{
				Name:  "no-reparse",
				Usage: "do not parse canonical text a second time",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ch := cfg.ClickHouse
			if cmd.IsSet("clickhouse-dsn") {
				ch.DSN = cmd.String("clickhouse-dsn")
			}
			if cmd.IsSet("docker") {
				ch.Docker = cmd.Bool("docker")
			}
			if cmd.IsSet("clickhouse-version") {
				ch.Version = cmd.String("clickhouse-version")
			}

			paths, err := findFixtures(fixtureArgs(cmd.Args().Slice(), cfg))
			if err != nil {
				return err
			}

			var opts []sqltest.Option
			if cmd.Bool("no-reparse") || !cfg.ShouldReparse() {
				opts = append(opts, sqltest.WithoutReparse())
			}

			if ch.DSN != "" || ch.Docker {
				client, closeFn, err := connectValidator(ctx, ch)
				if err != nil {
					return err
				}
				defer closeFn()

				opts = append(opts, sqltest.WithValidator(client))
			}

			return runCheck(ctx, cmd.Writer, paths, opts...)
		},
	}
}

func runCheck(ctx context.Context, w io.Writer, paths []string, opts ...sqltest.Option) error {
	var passed, failed, broken int

	for _, path := range paths {
		slog.Debug("Checking fixture", "path", path)

		report, err := sqltest.CheckFile(ctx, path, opts...)
		if report != nil {
			passed += report.Passed
			failed += len(report.Failures)

			for _, f := range report.Failures {
				fmt.Fprintf(w, "FAIL %s:%d-%d [%s]\n%s\n", f.Case.Path, f.Case.LineStart, f.Case.LineEnd, f.Stage, indent(f.Message))
			}
		}

		if err != nil {
			broken++
			fmt.Fprintf(w, "BROKEN %s\n%s\n", path, indent(err.Error()))
			continue
		}

		if len(report.Failures) == 0 {
			fmt.Fprintf(w, "ok   %s (%d cases)\n", path, report.Total())
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed, %d broken fixtures\n", passed, failed, broken)

	if failed > 0 || broken > 0 {
		return errors.Errorf("%d failing cases, %d broken fixtures", failed, broken)
	}

	return nil
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
