package testfile_test

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
	. "github.com/pseudomuto/sqlfixture/pkg/testfile"
	"github.com/stretchr/testify/require"
)

// rawCase is what a test case looks like before its tree is decoded.
type rawCase struct {
	sql       string
	expected  string
	canonical string
	lineStart int
	lineEnd   int
}

// readRaw reads every case from input, capturing the raw expected-tree text
// instead of decoding it.
func readRaw(t *testing.T, input string) []rawCase {
	t.Helper()

	var raws []string
	decode := func(raw string) (Expected, error) {
		raws = append(raws, raw)
		return Expected{Ok: &ast.Statement{}}, nil
	}

	r := NewReader(bufio.NewScanner(strings.NewReader(input)), WithDecoder(decode))

	var cases []rawCase
	for tc, err := range r.All() {
		require.NoError(t, err)
		cases = append(cases, rawCase{
			sql:       tc.SQL,
			expected:  raws[len(raws)-1],
			canonical: tc.Canonical,
			lineStart: tc.LineStart,
			lineEnd:   tc.LineEnd,
		})
	}

	return cases
}

func TestReader_SingleCase(t *testing.T) {
	input := "SELECT 1\n--\n(:ok (:query (:projection ((:expr (:number \"1\"))))))\n--\nSELECT 1\n==\n"

	r := NewReader(bufio.NewScanner(strings.NewReader(input)))

	tc, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "\nSELECT 1", tc.SQL)
	require.Equal(t, "SELECT 1", tc.Canonical)
	require.Equal(t, Expected{Ok: &ast.Statement{
		Query: &ast.Query{Projection: []ast.SelectItem{{Expr: ast.Number("1").Ptr()}}},
	}}, tc.Expected)
	require.Equal(t, "<input>", tc.Path)
	require.Equal(t, 1, tc.LineStart)
	require.Equal(t, 6, tc.LineEnd)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_TruncatedCase(t *testing.T) {
	r := NewReader(bufio.NewScanner(strings.NewReader("SELECT 1\n--\n(bad")))

	tc, err := r.Next()
	require.Nil(t, tc)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 3, r.Line())
}

func TestReader_LineRangeAtEndOfFile(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing newline", `# first
SELECT 1
--
(:ok (:query ()))
--
SELECT 1
`},
		{"no trailing newline", `# first
SELECT 1
--
(:ok (:query ()))
--
SELECT 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bufio.NewScanner(strings.NewReader(tt.input)))

			tc, err := r.Next()
			require.NoError(t, err)
			require.Equal(t, 1, tc.LineStart)
			require.Equal(t, 6, tc.LineEnd)
		})
	}
}

func TestReader_ExhaustionIsSticky(t *testing.T) {
	r := NewReader(bufio.NewScanner(strings.NewReader("a\n--\n(:ok (:query ()))\n--\na\n")))

	_, err := r.Next()
	require.NoError(t, err)

	for range 3 {
		tc, err := r.Next()
		require.Nil(t, tc)
		require.ErrorIs(t, err, io.EOF)
	}
}

func TestReader_LeadingNewlineIsPreserved(t *testing.T) {
	cases := readRaw(t, "SELECT a\n  FROM t\t\n--\n(tree\n  here)\n--\nSELECT a FROM t\n")

	require.Len(t, cases, 1)
	require.Equal(t, "\nSELECT a\n  FROM t\t", cases[0].sql)
	require.Equal(t, "\n(tree\n  here)", cases[0].expected)
}

func TestReader_SectionCeiling(t *testing.T) {
	cases := readRaw(t, "a\n--\nb\n--\nc\n--\nd\n---\ne\n")

	require.Len(t, cases, 1)
	require.Equal(t, "\na", cases[0].sql)
	require.Equal(t, "\nb", cases[0].expected)
	require.Equal(t, "c d e", cases[0].canonical)
}

func TestReader_CommentTransparency(t *testing.T) {
	plain := "SELECT a,\n  b\n--\n(x\n y)\n--\nSELECT a,\nb\n==\nSELECT 2\n--\n(z)\n--\nSELECT 2\n"
	commented := "# header\n\nSELECT a,\n# inside sql\n  b\n\n--\n#tree comment\n(x\n\n y)\n--\n# canonical comment\nSELECT a,\n\nb\n==\n\n#between cases\nSELECT 2\n--\n(z)\n--\nSELECT 2\n# trailing\n"

	want := readRaw(t, plain)
	got := readRaw(t, commented)
	require.Len(t, got, len(want))

	for i := range want {
		require.Equal(t, want[i].sql, got[i].sql)
		require.Equal(t, want[i].expected, got[i].expected)
		require.Equal(t, want[i].canonical, got[i].canonical)
	}
}

func TestReader_CanonicalSpacing(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"open then close", []string{"a (", ")"}, "a ()"},
		{"function call", []string{"SELECT count(", "  *", ")"}, "SELECT count(*)"},
		{"nested calls", []string{"f(", "g(", "x", ")", ")"}, "f(g(x))"},
		{"close after args", []string{"VALUES (", "1,", "2", ") , (3)"}, "VALUES (1, 2) , (3)"},
		{"words are joined", []string{"  SELECT  ", "\ta", "FROM t  "}, "SELECT a FROM t"},
		{"close on first line", []string{") x"}, ") x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "sql\n--\ntree\n--\n" + strings.Join(tt.lines, "\n") + "\n"
			cases := readRaw(t, input)

			require.Len(t, cases, 1)
			require.Equal(t, tt.want, cases[0].canonical)
		})
	}
}

func TestReader_CaseSeparatorDropsIncompleteCase(t *testing.T) {
	cases := readRaw(t, "SELECT 1\n--\n==\nSELECT 2\n--\n(t)\n--\nSELECT 2\n===\nSELECT 3\n==\n")

	require.Len(t, cases, 1)
	require.Equal(t, "\nSELECT 2", cases[0].sql)
	require.Equal(t, "\n(t)", cases[0].expected)
	require.Equal(t, 4, cases[0].lineStart)
	require.Equal(t, 9, cases[0].lineEnd)
}

func TestReader_SeparatorsMatchByPrefix(t *testing.T) {
	cases := readRaw(t, "a\n-- sql done\nb\n--------\nc\n== end of case\nd\n--\ne\n--\nf")

	require.Len(t, cases, 2)
	require.Equal(t, rawCase{sql: "\na", expected: "\nb", canonical: "c", lineStart: 1, lineEnd: 6}, cases[0])
	require.Equal(t, rawCase{sql: "\nd", expected: "\ne", canonical: "f", lineStart: 7, lineEnd: 11}, cases[1])
}

func TestReader_IncompleteTrailingCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"sql only", "a\n--\nb\n--\nc\n==\nSELECT 9\n"},
		{"missing canonical separator", "a\n--\nb\n--\nc\n==\nSELECT 9\n--\n(tree)\n"},
		{"trailing separator", "a\n--\nb\n--\nc\n==\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := readRaw(t, tt.input)
			require.Len(t, cases, 1)
			require.Equal(t, "c", cases[0].canonical)
		})
	}
}

func TestReader_EmptyInput(t *testing.T) {
	require.Empty(t, readRaw(t, ""))
	require.Empty(t, readRaw(t, "# only comments\n\n# here\n"))
}

func TestReader_LineAccounting(t *testing.T) {
	input := strings.Join([]string{
		"SELECT 1",
		"--",
		"(:ok (:query ()))",
		"--",
		"==",
		"SELECT 2",
		"--",
		"(:ok (:query ()))",
		"==",
	}, "\n")

	r := NewReader(bufio.NewScanner(strings.NewReader(input)))

	tc, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, 1, tc.LineStart)
	require.Equal(t, 5, tc.LineEnd)
	require.Equal(t, 5, r.Line())

	// the second case never reaches its canonical section
	tc, err = r.Next()
	require.Nil(t, tc)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 9, r.Line())
}

func TestReader_DecodeErrorReportsLineRange(t *testing.T) {
	input := strings.Join([]string{
		"SELECT 1",
		"--",
		"(:ok (:query ()))",
		"--",
		"SELECT 1",
		"==",
		"SELECT 2",
		"--",
		"(:ok (:bogus 1))",
		"--",
		"SELECT 2",
		"==",
	}, "\n")

	r := NewReader(bufio.NewScanner(strings.NewReader(input)), WithPath("lines.sqltest"))

	tc, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, 1, tc.LineStart)
	require.Equal(t, 6, tc.LineEnd)

	_, err = r.Next()

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "lines.sqltest", decodeErr.Path)
	require.Equal(t, 7, decodeErr.LineStart)
	require.Equal(t, 12, decodeErr.LineEnd)
	require.Equal(t, "\n(:ok (:bogus 1))", decodeErr.Raw)
	require.Contains(t, decodeErr.Error(), "lines.sqltest: deserialize error in block from line 7 to 12")
	require.Contains(t, decodeErr.Error(), `unknown field "bogus"`)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF, "a broken fixture stops the reader")
}

type failingSource struct {
	lines []string
	err   error
	pos   int
}

func (f *failingSource) Scan() bool {
	if f.pos >= len(f.lines) {
		return false
	}
	f.pos++
	return true
}

func (f *failingSource) Text() string { return f.lines[f.pos-1] }
func (f *failingSource) Err() error   { return f.err }

func TestReader_ReadError(t *testing.T) {
	cause := errors.New("disk on fire")
	r := NewReader(&failingSource{lines: []string{"SELECT 1", "--"}, err: cause}, WithPath("broken.sqltest"))

	_, err := r.Next()

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "broken.sqltest", readErr.Path)
	require.Equal(t, 3, readErr.Line)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "select.sqltest")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1\n--\n(:ok (:query ()))\n--\nSELECT 1\n"), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	require.Equal(t, path, r.Path())

	tc, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, path, tc.Path)
	require.Equal(t, 5, tc.LineEnd)
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.sqltest")

	_, err := Open(path)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	require.Equal(t, path, openErr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "can't open fixture file "+path)
}

func TestReader_CloseWithoutFile(t *testing.T) {
	r := NewReader(bufio.NewScanner(strings.NewReader("")))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestReader_AllStopsEarly(t *testing.T) {
	input := "a\n--\n(:ok (:query ()))\n--\na\n==\nb\n--\n(:ok (:query ()))\n--\nb\n"
	r := NewReader(bufio.NewScanner(strings.NewReader(input)))

	count := 0
	for tc, err := range r.All() {
		require.NoError(t, err)
		require.Equal(t, "a", tc.Canonical)
		count++
		break
	}
	require.Equal(t, 1, count)

	tc, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "b", tc.Canonical)
}
