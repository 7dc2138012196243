package ast

import "strings"

type (
	// Statement is a single parsed SQL statement. Exactly one field is set.
	Statement struct {
		Query       *Query
		Insert      *Insert
		Update      *Update
		Delete      *Delete
		CreateTable *CreateTable
		DropTable   *DropTable
	}

	// Query represents a SELECT statement.
	Query struct {
		Distinct   bool
		Projection []SelectItem
		From       *TableRef
		Joins      []Join
		Where      *Expr
		GroupBy    []Expr
		Having     *Expr
		OrderBy    []OrderByExpr
		Limit      *Expr
		Offset     *Expr
	}

	// SelectItem is one entry of a projection: either `*` or an expression
	// with an optional alias.
	SelectItem struct {
		Wildcard bool
		Expr     *Expr
		Alias    string
	}

	// ObjectName is a possibly qualified name such as db.table.
	ObjectName []string

	// TableRef names a table in a FROM or JOIN clause.
	TableRef struct {
		Name  ObjectName
		Alias string
	}

	// Join is a single JOIN clause. CROSS joins carry no condition.
	Join struct {
		Kind  JoinKind
		Table TableRef
		On    *Expr
	}

	// JoinKind is the normalized join type.
	JoinKind string

	// OrderByExpr is an ORDER BY item. Asc is nil when no direction was given.
	OrderByExpr struct {
		Expr Expr
		Asc  *bool
	}

	// Insert represents INSERT INTO ... VALUES or INSERT INTO ... SELECT.
	Insert struct {
		Table   ObjectName
		Columns []string
		Values  [][]Expr
		Query   *Query
	}

	// Update represents UPDATE ... SET ... [WHERE ...].
	Update struct {
		Table       ObjectName
		Assignments []Assignment
		Where       *Expr
	}

	// Assignment is a single `column = value` pair of an UPDATE.
	Assignment struct {
		Column string
		Value  Expr
	}

	// Delete represents DELETE FROM ... [WHERE ...].
	Delete struct {
		Table ObjectName
		Where *Expr
	}

	// CreateTable represents CREATE TABLE [IF NOT EXISTS] name (columns).
	CreateTable struct {
		IfNotExists bool
		Name        ObjectName
		Columns     []ColumnDef
	}

	// ColumnDef is a column definition inside CREATE TABLE.
	ColumnDef struct {
		Name     string
		DataType DataType
		Options  []ColumnOption
	}

	// DataType is a column type with optional numeric arguments, e.g. VARCHAR(20).
	DataType struct {
		Name string
		Args []string
	}

	// ColumnOption is a single column constraint. Exactly one field is set.
	ColumnOption struct {
		NotNull    bool
		Null       bool
		PrimaryKey bool
		Unique     bool
		Default    *Expr
	}

	// DropTable represents DROP TABLE [IF EXISTS] name [, name...].
	DropTable struct {
		IfExists bool
		Names    []ObjectName
	}
)

// Join kinds. A bare JOIN is an inner join.
const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	FullJoin  JoinKind = "FULL"
	CrossJoin JoinKind = "CROSS"
)

// String returns the dotted form of the name.
func (n ObjectName) String() string {
	return strings.Join(n, ".")
}
