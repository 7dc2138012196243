package ast

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	// TokenizerError means the input could not be split into tokens.
	TokenizerError ErrorKind = "tokenizer"

	// ParserError means the tokens did not form a valid statement.
	ParserError ErrorKind = "parser"
)

// ParseError is the structured error returned by the parser.
//
// Line and Column are 1-based and zero when unknown. Fixtures normally leave
// them out and describe an error by kind and message only.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}

	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Matches reports whether err is a *ParseError of the same kind whose message
// contains e.Message. An empty expected message matches any message. Line and
// Column are only compared when e sets them.
func (e *ParseError) Matches(err error) bool {
	var actual *ParseError
	if !errors.As(err, &actual) {
		return false
	}

	switch {
	case actual.Kind != e.Kind:
		return false
	case e.Line > 0 && actual.Line != e.Line:
		return false
	case e.Column > 0 && actual.Column != e.Column:
		return false
	}

	return strings.Contains(actual.Message, e.Message)
}
