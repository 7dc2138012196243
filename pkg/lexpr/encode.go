package lexpr

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// lineWidth is the widest list Indent keeps on a single line.
const lineWidth = 72

// Marshal renders v on a single line.
func Marshal(v any) (string, error) {
	val, err := Encode(v)
	if err != nil {
		return "", err
	}

	return val.String(), nil
}

// Indent renders v over multiple lines, keeping short lists on one line and
// placing each property of a long property list on its own line.
func Indent(v any) (string, error) {
	val, err := Encode(v)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeIndented(&sb, val, 0)
	return sb.String(), nil
}

// Encode converts v into a Value tree.
func Encode(v any) (*Value, error) {
	return encodeValue(reflect.ValueOf(v))
}

func encodeValue(rv reflect.Value) (*Value, error) {
	if !rv.IsValid() {
		return symbol("nil"), nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return symbol("nil"), nil
		}
		return encodeValue(rv.Elem())
	case reflect.Struct:
		return encodeStruct(rv)
	case reflect.Slice, reflect.Array:
		list := &Value{Kind: ListKind}
		for i := range rv.Len() {
			item, err := encodeValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	case reflect.String:
		return &Value{Kind: StringKind, Text: rv.String()}, nil
	case reflect.Bool:
		if rv.Bool() {
			return &Value{Kind: BoolKind, Text: "#t"}, nil
		}
		return &Value{Kind: BoolKind, Text: "#f"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Value{Kind: NumberKind, Text: strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Value{Kind: NumberKind, Text: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return &Value{Kind: NumberKind, Text: strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())}, nil
	default:
		return nil, errors.Errorf("lexpr: unsupported type %s", rv.Type())
	}
}

func encodeStruct(rv reflect.Value) (*Value, error) {
	list := &Value{Kind: ListKind}
	for _, f := range fieldsOf(rv.Type()).list {
		fv := rv.Field(f.index)
		if isEmpty(fv) {
			continue
		}

		item, err := encodeValue(fv)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.name)
		}
		list.Items = append(list.Items, &Value{Kind: KeywordKind, Text: f.name}, item)
	}

	return list, nil
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}

func symbol(name string) *Value {
	return &Value{Kind: SymbolKind, Text: name}
}

// isPropertyList reports whether a list alternates keywords and values.
func isPropertyList(v *Value) bool {
	if v.Kind != ListKind || v.Tail != nil || len(v.Items) == 0 || len(v.Items)%2 != 0 {
		return false
	}
	for i := 0; i < len(v.Items); i += 2 {
		if v.Items[i].Kind != KeywordKind {
			return false
		}
	}
	return true
}

func writeIndented(sb *strings.Builder, v *Value, col int) {
	flat := v.String()
	if v.Kind != ListKind || col+len(flat) <= lineWidth {
		sb.WriteString(flat)
		return
	}

	sb.WriteByte('(')
	if isPropertyList(v) {
		for i := 0; i < len(v.Items); i += 2 {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", col+1))
			}
			key := v.Items[i].String()
			sb.WriteString(key)
			sb.WriteByte(' ')
			writeIndented(sb, v.Items[i+1], col+1+len(key)+1)
		}
	} else {
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", col+1))
			}
			writeIndented(sb, item, col+1)
		}
		if v.Tail != nil {
			sb.WriteString(" . ")
			v.Tail.write(sb)
		}
	}
	sb.WriteByte(')')
}
