package lexpr_test

import (
	"testing"

	. "github.com/pseudomuto/sqlfixture/pkg/lexpr"
	"github.com/stretchr/testify/require"
)

type (
	column struct {
		Name     string
		DataType string
		Nullable bool
		Width    int
		Ratio    float64
	}

	table struct {
		Name    []string
		Columns []column
		Comment *string
		Owner   string `lexpr:"owned-by"`
		Skipped string `lexpr:"-"`
	}
)

func TestUnmarshal(t *testing.T) {
	input := `
; a table with two columns
(:name (db users)
 :columns ((:name id :data-type "INT" :width 11)
           (:name "score" :data-type "FLOAT" :nullable #t :ratio 0.25))
 :comment "users table"
 :owned-by admin)`

	var got table
	require.NoError(t, Unmarshal(input, &got))

	comment := "users table"
	require.Equal(t, table{
		Name: []string{"db", "users"},
		Columns: []column{
			{Name: "id", DataType: "INT", Width: 11},
			{Name: "score", DataType: "FLOAT", Nullable: true, Ratio: 0.25},
		},
		Comment: &comment,
		Owner:   "admin",
	}, got)
}

func TestUnmarshal_NilValues(t *testing.T) {
	var got table
	require.NoError(t, Unmarshal(`(:name nil :comment nil)`, &got))
	require.Nil(t, got.Name)
	require.Nil(t, got.Comment)

	require.NoError(t, Unmarshal(`(:comment ())`, &got))
	require.Nil(t, got.Comment)
}

func TestUnmarshal_BoolSymbols(t *testing.T) {
	var got column
	require.NoError(t, Unmarshal(`(:nullable true)`, &got))
	require.True(t, got.Nullable)

	require.NoError(t, Unmarshal(`(:nullable false)`, &got))
	require.False(t, got.Nullable)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unknown field", `(:name (x) :colour red)`, `unknown field "colour"`},
		{"duplicate field", `(:owned-by a :owned-by b)`, `duplicate field "owned-by"`},
		{"odd property list", `(:name)`, "odd number of elements"},
		{"key is not a keyword", `(name (x))`, "expected keyword"},
		{"string into int", `(:columns ((:width "wide")))`, "cannot decode string"},
		{"list into string", `(:owned-by (a b))`, "cannot decode list"},
		{"dotted pair into slice", `(:name (a . b))`, "cannot decode list"},
		{"number overflow", `(:columns ((:width 99999999999999999999)))`, "out of range"},
		{"syntax error", `(:name`, "syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got table
			require.ErrorContains(t, Unmarshal(tt.input, &got), tt.message)
		})
	}
}

func TestUnmarshal_ErrorPosition(t *testing.T) {
	var got column
	err := Unmarshal("(:name id\n :width x)", &got)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, Position{Line: 2, Column: 9}, decodeErr.Pos)
}

func TestUnmarshal_RequiresPointer(t *testing.T) {
	var got column
	require.Error(t, Unmarshal(`(:name id)`, got))
	require.Error(t, Unmarshal(`(:name id)`, (*column)(nil)))
}
