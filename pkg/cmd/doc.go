// Package cmd provides the sqlfixture command line interface.
//
// Commands are plain *cli.Command values (urfave/cli/v3) registered with fx
// through the "commands" value group, and Run wires them into a root
// application that starts with the fx lifecycle.
//
// # Available Commands
//
//   - check: run fixture files and report failing cases, optionally
//     validating canonical queries against ClickHouse
//   - list: print the location and canonical text of every case
//   - parse: print a ready-to-paste fixture case for a statement
//   - fmt: format .sql files with the configured layout
//
// # Global Options
//
//   - --dir, -d: directory to run in; sqlfixture.yaml is read from there
//   - --verbose, -v: log at debug level
//
// # Example Usage
//
//	sqlfixture check                                # fixtures from sqlfixture.yaml
//	sqlfixture check parser/testdata                # every *.sqltest below a directory
//	sqlfixture check --docker                       # also validate with a ClickHouse container
//	sqlfixture parse "SELECT a FROM t" >> testdata/select.sqltest
//	sqlfixture fmt -w sql/
package cmd
