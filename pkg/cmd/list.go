package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pseudomuto/sqlfixture/pkg/config"
	"github.com/pseudomuto/sqlfixture/pkg/testfile"
	"github.com/urfave/cli/v3"
)

// list returns the command that prints the location of every case along with
// its canonical text or expected error.
//
//	$ sqlfixture list testdata/ddl.sqltest
//	testdata/ddl.sqltest:1-6	DROP TABLE t
//	testdata/ddl.sqltest:7-11	error: parser: expected ON condition
func list(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the cases in fixture files",
		ArgsUsage: "[paths...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths, err := findFixtures(fixtureArgs(cmd.Args().Slice(), cfg))
			if err != nil {
				return err
			}

			for _, path := range paths {
				if err := listFixture(cmd.Writer, path); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func listFixture(w io.Writer, path string) error {
	r, err := testfile.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	for tc, err := range r.All() {
		if err != nil {
			return err
		}

		summary := tc.Canonical
		if e := tc.Expected.Err; e != nil {
			summary = fmt.Sprintf("error: %s: %s", e.Kind, e.Message)
		}

		fmt.Fprintf(w, "%s:%d-%d\t%s\n", tc.Path, tc.LineStart, tc.LineEnd, summary)
	}

	return nil
}
