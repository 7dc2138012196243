package cmd

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/config"
	"github.com/pseudomuto/sqlfixture/pkg/consts"
	"github.com/pseudomuto/sqlfixture/pkg/format"
	"github.com/pseudomuto/sqlfixture/pkg/parser"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for formatting SQL files, similar to gofmt.
//
// The path may be a single .sql file or a directory, which is walked
// recursively for .sql files in lexical order. Output goes to stdout unless
// -w is given, in which case files are rewritten in place. The layout comes
// from the `format` section of sqlfixture.yaml and defaults to one clause per
// line with uppercase keywords.
//
// Examples:
//
//	# Format single file to stdout
//	sqlfixture fmt queries.sql
//
//	# Format all SQL files in a directory in-place
//	sqlfixture fmt -w sql/
//
// Files with syntax errors cause the command to fail and are left untouched.
func fmtCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			return formatPath(cfg.GetFormatter(), cmd.Args().First(), cmd.Bool("write"), cmd.Writer)
		},
	}
}

func formatPath(f *format.Formatter, path string, writeBack bool, w io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if !info.IsDir() {
		return formatFile(f, path, writeBack, w)
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".sql") {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", path)
	}

	if len(files) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", path)
	}

	for _, file := range files {
		if err := formatFile(f, file, writeBack, w); err != nil {
			return err
		}
	}

	return nil
}

func formatFile(f *format.Formatter, path string, writeBack bool, w io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	stmts, err := parser.ParseString(string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to parse SQL in file: %s", path)
	}

	var buf strings.Builder
	if err := f.Format(&buf, stmts...); err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	if len(stmts) > 0 {
		buf.WriteString("\n")
	}

	if writeBack {
		return errors.Wrapf(
			os.WriteFile(path, []byte(buf.String()), consts.ModeFile),
			"failed to write formatted content to file: %s", path,
		)
	}

	_, err = io.WriteString(w, buf.String())
	return errors.Wrap(err, "failed to write formatted content to output")
}
