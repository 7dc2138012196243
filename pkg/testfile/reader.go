package testfile

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	commentPrefix    = "#"
	sectionSeparator = "--"
	caseSeparator    = "=="

	maxLineSize = 1 << 20
)

type (
	// LineSource yields the lines of a fixture. *bufio.Scanner satisfies it.
	LineSource interface {
		Scan() bool
		Text() string
		Err() error
	}

	// Reader splits a fixture into test cases. It owns its LineSource and must
	// not be shared.
	Reader struct {
		path   string
		lines  LineSource
		closer io.Closer
		decode Decoder
		line   int
		done   bool
	}

	// Option configures a Reader.
	Option func(*Reader)
)

// WithDecoder replaces DecodeExpected as the expected-tree decoder.
func WithDecoder(decode Decoder) Option {
	return func(r *Reader) { r.decode = decode }
}

// WithPath sets the path reported in cases and errors.
func WithPath(path string) Option {
	return func(r *Reader) { r.path = path }
}

// NewReader returns a Reader over src.
func NewReader(src LineSource, opts ...Option) *Reader {
	r := &Reader{
		path:   "<input>",
		lines:  src,
		decode: DecodeExpected,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Open opens the fixture at path. The caller must Close the reader.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	r := NewReader(scanner, append([]Option{WithPath(path)}, opts...)...)
	r.closer = f
	return r, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	err := r.closer.Close()
	r.closer = nil
	return err
}

// Path returns the fixture path used in diagnostics.
func (r *Reader) Path() string {
	return r.path
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next test case. It returns io.EOF once the fixture is
// exhausted, and keeps returning io.EOF after that. Any other error means the
// fixture is broken and reading cannot continue.
func (r *Reader) Next() (*TestCase, error) {
	for !r.done {
		tc, err := r.readCase()
		if err != nil {
			r.done = true
			return nil, err
		}

		if tc != nil {
			return tc, nil
		}
	}

	return nil, io.EOF
}

// All iterates over the remaining cases. Iteration stops after the first
// error.
func (r *Reader) All() iter.Seq2[*TestCase, error] {
	return func(yield func(*TestCase, error) bool) {
		for {
			tc, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(tc, err) || err != nil {
				return
			}
		}
	}
}

// readCase consumes the lines of one case. It returns a nil case without an
// error when the case was dropped for not reaching its canonical section.
func (r *Reader) readCase() (*TestCase, error) {
	var buf caseBuffer
	start := r.line + 1

	for {
		if !r.lines.Scan() {
			if err := r.lines.Err(); err != nil {
				return nil, &ReadError{Path: r.path, Line: r.line + 1, Err: err}
			}

			r.done = true
			if !buf.complete() {
				return nil, nil
			}

			return r.build(&buf, start)
		}

		r.line++
		line := r.lines.Text()

		switch {
		case line == "" || strings.HasPrefix(line, commentPrefix):
			continue
		case strings.HasPrefix(line, sectionSeparator):
			buf.section = buf.section.next()
		case strings.HasPrefix(line, caseSeparator):
			if !buf.complete() {
				return nil, nil
			}

			return r.build(&buf, start)
		default:
			buf.add(line)
		}
	}
}

func (r *Reader) build(buf *caseBuffer, start int) (*TestCase, error) {
	return newTestCase(
		r.path,
		buf.sql.String(),
		string(buf.canonical),
		buf.expected.String(),
		start,
		r.line,
		r.decode,
	)
}

// section is the part of a case that content lines are appended to.
type section int

const (
	sqlSection section = iota
	expectedSection
	canonicalSection
)

// next returns the following section. The canonical section is final.
func (s section) next() section {
	if s < canonicalSection {
		return s + 1
	}

	return s
}

type caseBuffer struct {
	section   section
	sql       strings.Builder
	expected  strings.Builder
	canonical []byte
}

func (b *caseBuffer) complete() bool {
	return b.section == canonicalSection
}

func (b *caseBuffer) add(line string) {
	switch b.section {
	case sqlSection:
		b.sql.WriteByte('\n')
		b.sql.WriteString(line)
	case expectedSection:
		b.expected.WriteByte('\n')
		b.expected.WriteString(line)
	case canonicalSection:
		b.addCanonical(line)
	}
}

func (b *caseBuffer) addCanonical(line string) {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, ")") && len(b.canonical) > 0 && b.canonical[len(b.canonical)-1] == ' ' {
		b.canonical = b.canonical[:len(b.canonical)-1]
	}

	b.canonical = append(b.canonical, line...)
	if !strings.HasSuffix(line, "(") {
		b.canonical = append(b.canonical, ' ')
	}
}
