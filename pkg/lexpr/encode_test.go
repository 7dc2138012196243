package lexpr_test

import (
	"testing"

	. "github.com/pseudomuto/sqlfixture/pkg/lexpr"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	comment := "line\none"
	out, err := Marshal(table{
		Name:    []string{"db", "users"},
		Columns: []column{{Name: "id", Width: 11}, {Name: "ratio", Nullable: true, Ratio: 0.5}},
		Comment: &comment,
		Skipped: "ignored",
	})
	require.NoError(t, err)
	require.Equal(t,
		`(:name ("db" "users") :columns ((:name "id" :width 11) (:name "ratio" :nullable #t :ratio 0.5)) :comment "line\none")`,
		out,
	)
}

func TestMarshal_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil pointer", (*table)(nil), "nil"},
		{"true", true, "#t"},
		{"false", false, "#f"},
		{"negative int", -3, "-3"},
		{"string", `say "hi"`, `"say \"hi\""`},
		{"empty struct", column{}, "()"},
		{"slice", []int{1, 2}, "(1 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Marshal(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestMarshal_Unsupported(t *testing.T) {
	_, err := Marshal(map[string]int{"a": 1})
	require.ErrorContains(t, err, "unsupported type")
}

func TestIndent(t *testing.T) {
	out, err := Indent(table{
		Name: []string{"analytics", "events"},
		Columns: []column{
			{Name: "identifier", DataType: "BIGINT", Width: 20},
			{Name: "created_at", DataType: "TIMESTAMP", Nullable: true},
		},
		Owner: "platform",
	})
	require.NoError(t, err)

	want := `(:name ("analytics" "events")
 :columns ((:name "identifier" :data-type "BIGINT" :width 20)
           (:name "created_at" :data-type "TIMESTAMP" :nullable #t))
 :owned-by "platform")`
	require.Equal(t, want, out)
}

func TestRoundTrip(t *testing.T) {
	comment := "c"
	original := table{
		Name:    []string{"t"},
		Columns: []column{{Name: "a", DataType: "TEXT", Nullable: true, Width: 3, Ratio: 1.5}},
		Comment: &comment,
		Owner:   "me",
	}

	for _, render := range []func(any) (string, error){Marshal, Indent} {
		text, err := render(original)
		require.NoError(t, err)

		var decoded table
		require.NoError(t, Unmarshal(text, &decoded))
		require.Equal(t, original, decoded)
	}
}
