package sqltest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/testfile"
)

// Report is the outcome of checking one fixture file.
type Report struct {
	Path     string
	Passed   int
	Failures []*Failure
}

// Total returns the number of cases checked.
func (r *Report) Total() int {
	return r.Passed + len(r.Failures)
}

// Run checks every case in the fixture at path, one subtest per case. The
// subtests are named <file>:<start>-<end>.
func Run(t *testing.T, path string, opts ...Option) {
	t.Helper()

	cases := testfile.Cases(t, path)
	if len(cases) == 0 {
		t.Fatalf("fixture %s contains no test cases", path)
	}

	name := filepath.Base(path)
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s:%d-%d", name, tc.LineStart, tc.LineEnd), func(t *testing.T) {
			if f := Check(t.Context(), tc, opts...); f != nil {
				t.Errorf("%s failed at %s\nSQL:%s\n%s", name, f.Stage, tc.SQL, f.Message)
			}
		})
	}
}

// RunGlob runs every fixture matching pattern.
func RunGlob(t *testing.T, pattern string, opts ...Option) {
	t.Helper()

	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("bad fixture pattern %q: %v", pattern, err)
	}

	if len(paths) == 0 {
		t.Fatalf("no fixtures match %q", pattern)
	}

	for _, path := range paths {
		Run(t, path, opts...)
	}
}

// CheckFile checks every case in the fixture at path. The error is non-nil
// only when the fixture itself is broken; failing cases are recorded in the
// report.
func CheckFile(ctx context.Context, path string, opts ...Option) (*Report, error) {
	r, err := testfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	report := &Report{Path: path}
	for tc, err := range r.All() {
		if err != nil {
			return report, err
		}

		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "check cancelled")
		}

		if f := Check(ctx, tc, opts...); f != nil {
			slog.Debug("case failed", "path", path, "lines", fmt.Sprintf("%d-%d", tc.LineStart, tc.LineEnd), "stage", f.Stage)
			report.Failures = append(report.Failures, f)
			continue
		}

		report.Passed++
	}

	return report, nil
}
