package sqltest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
	"github.com/pseudomuto/sqlfixture/pkg/format"
	"github.com/pseudomuto/sqlfixture/pkg/parser"
	"github.com/pseudomuto/sqlfixture/pkg/testfile"
)

// Stage names the step of a check that failed.
type Stage string

const (
	StageParse     Stage = "parse"
	StageTree      Stage = "tree"
	StageCanonical Stage = "canonical"
	StageReparse   Stage = "reparse"
	StageValidate  Stage = "validate"
)

type (
	// Validator accepts or rejects canonical SQL, typically by asking a
	// database engine to parse it.
	Validator interface {
		Validate(ctx context.Context, sql string) error
	}

	// Option configures Check, Run and CheckFile.
	Option func(*options)

	options struct {
		reparse   bool
		validator Validator
	}

	// Failure describes why a case did not pass.
	Failure struct {
		Case    *testfile.TestCase
		Stage   Stage
		Message string
	}
)

// WithoutReparse skips parsing the canonical text a second time.
func WithoutReparse() Option {
	return func(o *options) { o.reparse = false }
}

// WithValidator asks v to accept the canonical text of every query.
func WithValidator(v Validator) Option {
	return func(o *options) { o.validator = v }
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s:%d-%d: %s: %s", f.Case.Path, f.Case.LineStart, f.Case.LineEnd, f.Stage, f.Message)
}

// Check runs a single case and returns nil when it passes.
//
// The leading newline the reader keeps in front of the SQL is dropped before
// parsing, so error positions count lines from the first SQL line.
func Check(ctx context.Context, tc *testfile.TestCase, opts ...Option) *Failure {
	o := options{reparse: true}
	for _, opt := range opts {
		opt(&o)
	}

	fail := func(stage Stage, msg string, args ...any) *Failure {
		return &Failure{Case: tc, Stage: stage, Message: fmt.Sprintf(msg, args...)}
	}

	stmt, err := parser.ParseStatement(strings.TrimPrefix(tc.SQL, "\n"))

	if want := tc.Expected.Err; want != nil {
		switch {
		case err == nil:
			return fail(StageParse, "expected %s, but the statement parsed as: %s", describe(want), format.Statement(stmt))
		case !want.Matches(err):
			return fail(StageParse, "expected %s, got: %v", describe(want), err)
		default:
			return nil
		}
	}

	if err != nil {
		return fail(StageParse, "unexpected error: %v", err)
	}

	if diff := diffTrees(tc.Expected.Ok, stmt); diff != "" {
		return fail(StageTree, "tree mismatch (-expected +actual):\n%s", diff)
	}

	canonical := format.Statement(stmt)
	if canonical != tc.Canonical {
		return fail(StageCanonical, "canonical mismatch:\n  expected: %s\n  actual:   %s", tc.Canonical, canonical)
	}

	if o.reparse {
		again, err := parser.ParseStatement(canonical)
		if err != nil {
			return fail(StageReparse, "canonical text does not parse: %v", err)
		}

		if diff := diffTrees(stmt, again); diff != "" {
			return fail(StageReparse, "canonical text parses to a different tree (-first +second):\n%s", diff)
		}
	}

	if o.validator != nil && stmt.Query != nil {
		if err := o.validator.Validate(ctx, canonical); err != nil {
			return fail(StageValidate, "rejected %q: %v", canonical, err)
		}
	}

	return nil
}

func diffTrees(want, got *ast.Statement) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func describe(e *ast.ParseError) string {
	out := fmt.Sprintf("a %s error", e.Kind)
	if e.Message != "" {
		out += fmt.Sprintf(" containing %q", e.Message)
	}
	if e.Line > 0 {
		out += fmt.Sprintf(" at %d:%d", e.Line, e.Column)
	}

	return out
}
