// Package sqltest runs fixture files against the SQL parser.
//
// A case passes when every stage succeeds:
//
//  1. parse: the SQL parses, or fails with the expected error
//  2. tree: the statement equals the expected tree
//  3. canonical: printing the statement yields the canonical text
//  4. reparse: parsing the canonical text yields the same tree
//  5. validate: an optional Validator, such as a ClickHouse server, accepts
//     the canonical text of queries
//
// Tests usually call Run or RunGlob, which create one subtest per case named
// after its location:
//
//	func TestFixtures(t *testing.T) {
//		sqltest.RunGlob(t, "testdata/*.sqltest")
//	}
//
// A fixture that cannot be read or decoded fails the test immediately. The
// check command uses CheckFile, which collects failures into a Report
// instead.
package sqltest
