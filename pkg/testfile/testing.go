package testfile

import "testing"

// MustOpen opens the fixture at path and fails the test immediately if it
// cannot be opened. The reader is closed when the test finishes.
func MustOpen(tb testing.TB, path string, opts ...Option) *Reader {
	tb.Helper()

	r, err := Open(path, opts...)
	if err != nil {
		tb.Fatalf("%v", err)
	}

	tb.Cleanup(func() { _ = r.Close() })
	return r
}

// Cases reads every case in the fixture at path. A fixture that cannot be
// opened, read or decoded fails the test immediately: a broken fixture is a
// bug in the test suite, not a test failure.
func Cases(tb testing.TB, path string, opts ...Option) []*TestCase {
	tb.Helper()

	var (
		cases []*TestCase
		fatal error
	)

	for tc, err := range MustOpen(tb, path, opts...).All() {
		if err != nil {
			fatal = err
			break
		}

		cases = append(cases, tc)
	}

	if fatal != nil {
		tb.Fatalf("%v", fatal)
	}

	return cases
}
