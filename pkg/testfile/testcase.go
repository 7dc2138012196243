package testfile

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/ast"
	"github.com/pseudomuto/sqlfixture/pkg/lexpr"
)

type (
	// TestCase is one fixture record. It is not modified after construction.
	TestCase struct {
		// SQL is the input exactly as accumulated, including the newline that
		// precedes every SQL line.
		SQL string

		// Canonical is the expected printer output.
		Canonical string

		// Expected is the decoded expected-tree section.
		Expected Expected

		// Path, LineStart and LineEnd locate the case in its fixture file.
		Path      string
		LineStart int
		LineEnd   int
	}

	// Expected is the outcome a case expects from the parser: a statement or
	// a parse error. Exactly one field is set.
	Expected struct {
		Ok  *ast.Statement  `lexpr:"ok"`
		Err *ast.ParseError `lexpr:"err"`
	}

	// Decoder turns the raw expected-tree text of a case into an Expected.
	Decoder func(raw string) (Expected, error)
)

// DecodeExpected is the default Decoder. The text must be a property list
// with exactly one of :ok or :err, e.g.
//
//	(:ok (:drop-table (:names ((t)))))
//	(:err (:kind parser :message "unexpected token"))
func DecodeExpected(raw string) (Expected, error) {
	var exp Expected
	if err := lexpr.Unmarshal(raw, &exp); err != nil {
		return Expected{}, err
	}

	if (exp.Ok == nil) == (exp.Err == nil) {
		return Expected{}, errors.New("expected tree must set exactly one of :ok or :err")
	}

	return exp, nil
}

func newTestCase(path, sql, canonical, raw string, lineStart, lineEnd int, decode Decoder) (*TestCase, error) {
	expected, err := decode(raw)
	if err != nil {
		return nil, &DecodeError{
			Path:      path,
			LineStart: lineStart,
			LineEnd:   lineEnd,
			Raw:       raw,
			Err:       err,
		}
	}

	return &TestCase{
		SQL:       sql,
		Canonical: strings.TrimSpace(canonical),
		Expected:  expected,
		Path:      path,
		LineStart: lineStart,
		LineEnd:   lineEnd,
	}, nil
}
