// Package testfile reads SQL parser fixture files.
//
// A fixture file holds any number of test cases. Each case has three
// sections: the SQL to parse, the expected statement tree written as an
// S-expression (see package lexpr), and the canonical SQL the printer must
// produce:
//
//	# comments and blank lines are ignored anywhere
//	SELECT 1
//	--
//	(:ok (:query (:projection ((:expr (:number "1"))))))
//	--
//	SELECT 1
//	==
//
// Lines starting with "--" move to the next section (at most twice per case),
// and lines starting with "==" end the case. The final case may omit its
// "==" line. A case that never reaches its canonical section is dropped.
//
// SQL and expected-tree lines are kept verbatim, each prefixed with a newline.
// Canonical lines are trimmed and joined with single spaces, except that no
// space follows an opening parenthesis and none precedes a closing one:
//
//	count(
//	  *
//	)
//
// becomes "count(*)".
//
// Every case records the 1-based, inclusive range of lines it was read from.
// LineStart is the line after the previous case ended, so leading comments
// and blank lines belong to the case that follows them. LineEnd is the "=="
// line, or the last line of the file when the final case omits it.
//
// A Reader yields cases one at a time:
//
//	r, err := testfile.Open("testdata/select.sqltest")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for tc, err := range r.All() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(tc.LineStart, tc.Canonical)
//	}
//
// Tests should prefer Cases or MustOpen, which fail the test immediately when
// a fixture cannot be opened, read or decoded.
package testfile
