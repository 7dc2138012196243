package lexpr

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	sexpLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `;[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
		{Name: "Bool", Pattern: `#[tf]`},
		{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`},
		{Name: "Keyword", Pattern: `:[^\s()";]+`},
		{Name: "Symbol", Pattern: `[^\s()";:.#][^\s()";]*`},
		{Name: "Punct", Pattern: `[().]`},
	})

	sexpParser = participle.MustBuild[node](
		participle.Lexer(sexpLexer),
		participle.Elide("Comment", "Whitespace"),
	)
)

type (
	node struct {
		Pos lexer.Position

		List    *listNode `parser:"  @@"`
		String  *string   `parser:"| @String"`
		Number  *string   `parser:"| @Number"`
		Bool    *string   `parser:"| @Bool"`
		Keyword *string   `parser:"| @Keyword"`
		Symbol  *string   `parser:"| @Symbol"`
	}

	listNode struct {
		Open  string  `parser:"@'('"`
		Items []*node `parser:"@@*"`
		Tail  *node   `parser:"('.' @@)?"`
		Close string  `parser:"@')'"`
	}
)

// Kind identifies the type of a Value.
type Kind int

const (
	ListKind Kind = iota
	StringKind
	NumberKind
	BoolKind
	KeywordKind
	SymbolKind
)

var kindNames = map[Kind]string{
	ListKind:    "list",
	StringKind:  "string",
	NumberKind:  "number",
	BoolKind:    "boolean",
	KeywordKind: "keyword",
	SymbolKind:  "symbol",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Position is a 1-based location in the parsed text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Value is a parsed S-expression.
//
// Text holds the atom's content: the unquoted string, the number as written,
// the keyword or symbol name (keywords without their colon), or "#t"/"#f".
// Lists use Items and an optional dotted Tail.
type Value struct {
	Kind  Kind
	Pos   Position
	Text  string
	Items []*Value
	Tail  *Value
}

// Parse reads a single S-expression from text. Anything other than
// whitespace and comments after the value is an error.
func Parse(text string) (*Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("lexpr: empty input")
	}

	n, err := sexpParser.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(err, "lexpr: syntax error")
	}

	return n.value()
}

// IsNil reports whether v is the nil symbol or the empty list.
func (v *Value) IsNil() bool {
	switch v.Kind {
	case SymbolKind:
		return v.Text == "nil"
	case ListKind:
		return len(v.Items) == 0 && v.Tail == nil
	default:
		return false
	}
}

// String renders v on a single line.
func (v *Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v *Value) write(sb *strings.Builder) {
	switch v.Kind {
	case ListKind:
		sb.WriteByte('(')
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item.write(sb)
		}
		if v.Tail != nil {
			sb.WriteString(" . ")
			v.Tail.write(sb)
		}
		sb.WriteByte(')')
	case StringKind:
		sb.WriteString(strconv.Quote(v.Text))
	case KeywordKind:
		sb.WriteByte(':')
		sb.WriteString(v.Text)
	default:
		sb.WriteString(v.Text)
	}
}

func (n *node) value() (*Value, error) {
	v := &Value{Pos: Position{Line: n.Pos.Line, Column: n.Pos.Column}}

	switch {
	case n.List != nil:
		v.Kind = ListKind
		for _, item := range n.List.Items {
			iv, err := item.value()
			if err != nil {
				return nil, err
			}
			v.Items = append(v.Items, iv)
		}
		if n.List.Tail != nil {
			tail, err := n.List.Tail.value()
			if err != nil {
				return nil, err
			}
			v.Tail = tail
		}
	case n.String != nil:
		s, err := strconv.Unquote(*n.String)
		if err != nil {
			return nil, errors.Wrapf(err, "lexpr: %s: invalid string %s", v.Pos, *n.String)
		}
		v.Kind, v.Text = StringKind, s
	case n.Number != nil:
		v.Kind, v.Text = NumberKind, *n.Number
	case n.Bool != nil:
		v.Kind, v.Text = BoolKind, *n.Bool
	case n.Keyword != nil:
		v.Kind, v.Text = KeywordKind, strings.TrimPrefix(*n.Keyword, ":")
	case n.Symbol != nil:
		v.Kind, v.Text = SymbolKind, *n.Symbol
	}

	return v, nil
}
