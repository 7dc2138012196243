package testfile

import "fmt"

type (
	// OpenError is returned when a fixture file cannot be opened.
	OpenError struct {
		Path string
		Err  error
	}

	// ReadError is returned when a line cannot be read from a fixture.
	ReadError struct {
		Path string
		Line int
		Err  error
	}

	// DecodeError is returned when the expected-tree section of a case cannot
	// be decoded. Raw holds the section text as it appeared in the file.
	DecodeError struct {
		Path      string
		LineStart int
		LineEnd   int
		Raw       string
		Err       error
	}
)

func (e *OpenError) Error() string {
	return fmt.Sprintf("can't open fixture file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading fixture file %s at line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: deserialize error in block from line %d to %d\nERROR: %v%s",
		e.Path, e.LineStart, e.LineEnd, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Err }
