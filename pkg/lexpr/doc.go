// Package lexpr reads and writes the S-expression notation used for expected
// statement trees in fixture files.
//
// The syntax is a small Lisp-style reader built with
// github.com/alecthomas/participle/v2:
//
//	(:query                         ; a property list decoded into a struct
//	  (:distinct #t                 ; booleans are #t and #f
//	   :projection ((:expr (:ident "a")))
//	   :from (:name (db users))))   ; plain symbols decode into strings
//
// Supported values are lists, dotted pairs, strings with Go escapes, numbers,
// booleans, symbols and keywords (symbols starting with a colon).
//
// Unmarshal maps values onto Go types by reflection:
//
//   - structs are property lists `(:field value ...)`; field names come from a
//     `lexpr:"name"` tag or the kebab-cased Go name (GroupBy -> group-by)
//   - slices are lists, pointers are `nil`, `()` or their element
//   - strings are strings or plain symbols, bools are #t/#f/true/false
//   - integer and float kinds are numbers
//
// Marshal and Indent perform the reverse mapping and omit zero-valued struct
// fields, so decoding their output yields the original value.
package lexpr
