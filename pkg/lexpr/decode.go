package lexpr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"
)

// DecodeError describes a value that cannot be stored in the target type.
type DecodeError struct {
	Pos Position
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("lexpr: %s: %s", e.Pos, e.Msg)
}

// Unmarshal parses text and stores the result in the value pointed to by v.
func Unmarshal(text string, v any) error {
	val, err := Parse(text)
	if err != nil {
		return err
	}

	return Decode(val, v)
}

// Decode stores an already parsed value in the value pointed to by v.
func Decode(val *Value, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Errorf("lexpr: Decode requires a non-nil pointer, got %T", v)
	}

	return decodeValue(val, rv.Elem())
}

func decodeValue(val *Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(val, rv.Elem())
	case reflect.Struct:
		return decodeStruct(val, rv)
	case reflect.Slice:
		return decodeSlice(val, rv)
	case reflect.String:
		if val.Kind != StringKind && val.Kind != SymbolKind {
			return mismatch(val, rv)
		}
		rv.SetString(val.Text)
	case reflect.Bool:
		b, ok := parseBool(val)
		if !ok {
			return mismatch(val, rv)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.Kind != NumberKind {
			return mismatch(val, rv)
		}
		n, err := strconv.ParseInt(val.Text, 10, rv.Type().Bits())
		if err != nil {
			return &DecodeError{Pos: val.Pos, Msg: err.Error()}
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val.Kind != NumberKind {
			return mismatch(val, rv)
		}
		n, err := strconv.ParseUint(val.Text, 10, rv.Type().Bits())
		if err != nil {
			return &DecodeError{Pos: val.Pos, Msg: err.Error()}
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if val.Kind != NumberKind {
			return mismatch(val, rv)
		}
		f, err := strconv.ParseFloat(val.Text, rv.Type().Bits())
		if err != nil {
			return &DecodeError{Pos: val.Pos, Msg: err.Error()}
		}
		rv.SetFloat(f)
	default:
		return &DecodeError{Pos: val.Pos, Msg: "unsupported type " + rv.Type().String()}
	}

	return nil
}

func decodeSlice(val *Value, rv reflect.Value) error {
	if val.Kind == SymbolKind && val.Text == "nil" {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if val.Kind != ListKind || val.Tail != nil {
		return mismatch(val, rv)
	}

	out := reflect.MakeSlice(rv.Type(), len(val.Items), len(val.Items))
	for i, item := range val.Items {
		if err := decodeValue(item, out.Index(i)); err != nil {
			return err
		}
	}

	rv.Set(out)
	return nil
}

func decodeStruct(val *Value, rv reflect.Value) error {
	if val.Kind != ListKind || val.Tail != nil {
		return mismatch(val, rv)
	}
	if len(val.Items)%2 != 0 {
		return &DecodeError{Pos: val.Pos, Msg: "property list for " + rv.Type().String() + " has an odd number of elements"}
	}

	fields := fieldsOf(rv.Type())
	seen := make(map[string]bool, len(val.Items)/2)

	for i := 0; i < len(val.Items); i += 2 {
		key := val.Items[i]
		if key.Kind != KeywordKind {
			return &DecodeError{Pos: key.Pos, Msg: fmt.Sprintf("expected keyword, got %s %s", key.Kind, key)}
		}

		idx, ok := fields.byName[key.Text]
		if !ok {
			return &DecodeError{Pos: key.Pos, Msg: fmt.Sprintf("unknown field %q for %s", key.Text, rv.Type())}
		}
		if seen[key.Text] {
			return &DecodeError{Pos: key.Pos, Msg: fmt.Sprintf("duplicate field %q", key.Text)}
		}
		seen[key.Text] = true

		if err := decodeValue(val.Items[i+1], rv.Field(idx)); err != nil {
			return err
		}
	}

	return nil
}

func parseBool(val *Value) (bool, bool) {
	switch {
	case val.Kind == BoolKind:
		return val.Text == "#t", true
	case val.Kind == SymbolKind && val.Text == "true":
		return true, true
	case val.Kind == SymbolKind && val.Text == "false":
		return false, true
	default:
		return false, false
	}
}

func mismatch(val *Value, rv reflect.Value) error {
	return &DecodeError{
		Pos: val.Pos,
		Msg: fmt.Sprintf("cannot decode %s %s into %s", val.Kind, val, rv.Type()),
	}
}

type field struct {
	name  string
	index int
}

type structFields struct {
	list   []field
	byName map[string]int
}

var fieldCache sync.Map // map[reflect.Type]*structFields

func fieldsOf(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}

	fs := &structFields{byName: make(map[string]int)}
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := kebab(sf.Name)
		if tag, ok := sf.Tag.Lookup("lexpr"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}

		fs.list = append(fs.list, field{name: name, index: i})
		fs.byName[name] = i
	}

	f, _ := fieldCache.LoadOrStore(t, fs)
	return f.(*structFields)
}

// kebab converts a Go identifier to its lexpr field name: GroupBy becomes
// group-by and SQLText becomes sql-text.
func kebab(name string) string {
	runes := []rune(name)

	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
